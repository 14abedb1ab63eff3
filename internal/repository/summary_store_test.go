package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorflow/backend/internal/database"
	"tutorflow/backend/internal/model"
)

func sampleEntry(summary string) *model.SummaryEntry {
	return &model.SummaryEntry{
		Summary:      summary,
		Question:     "Where is ATP made?",
		AnswerPills:  []string{"Nucleus", "Mitochondria"},
		CorrectIndex: 1,
		Explanation:  "Oxidative phosphorylation happens in mitochondria.",
		Starters:     []string{"Why mitochondria?"},
		GeneratedAt:  time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

// summaryStores runs the same behavioural checks against every implementation.
func summaryStores(t *testing.T) map[string]func(t *testing.T) SummaryStore {
	return map[string]func(t *testing.T) SummaryStore{
		"memory": func(t *testing.T) SummaryStore { return NewMemorySummaryStore() },
		"redis": func(t *testing.T) SummaryStore {
			mr := miniredis.RunT(t)
			rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { rdb.Close() })
			return NewRedisSummaryStore(rdb, time.Hour)
		},
		"sqlite": func(t *testing.T) SummaryStore {
			db, err := database.InitDB(filepath.Join(t.TempDir(), "cache.db"))
			require.NoError(t, err)
			t.Cleanup(func() { db.Close() })
			return NewSQLiteSummaryStore(db)
		},
	}
}

func TestSummaryStore_Contract(t *testing.T) {
	ctx := context.Background()
	topic := model.TopicScope("T1")
	chapter := model.ChapterScope("CH1")

	for name, newStore := range summaryStores(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("Round trip", func(t *testing.T) {
				store := newStore(t)
				entry := sampleEntry("ATP powers the cell.")
				require.NoError(t, store.Put(ctx, "u1", topic, 2, entry))

				got, err := store.Get(ctx, "u1", topic, 2)
				require.NoError(t, err)
				assert.Equal(t, entry.Summary, got.Summary)
				assert.Equal(t, entry.AnswerPills, got.AnswerPills)
				assert.Equal(t, entry.CorrectIndex, got.CorrectIndex)
				assert.Equal(t, entry.Starters, got.Starters)
				assert.True(t, entry.GeneratedAt.Equal(got.GeneratedAt))
			})

			t.Run("Miss", func(t *testing.T) {
				store := newStore(t)
				require.NoError(t, store.Put(ctx, "u1", topic, 2, sampleEntry("x")))

				_, err := store.Get(ctx, "u1", topic, 3)
				assert.ErrorIs(t, err, ErrNotFound)
				_, err = store.Get(ctx, "u2", topic, 2)
				assert.ErrorIs(t, err, ErrNotFound)
				_, err = store.Get(ctx, "u1", model.ChapterScope("T1"), 2)
				assert.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("Last depth is the most recent write", func(t *testing.T) {
				store := newStore(t)
				_, ok, err := store.LastDepth(ctx, "u1", topic)
				require.NoError(t, err)
				assert.False(t, ok)

				for _, d := range []int{2, 4, 3} {
					require.NoError(t, store.Put(ctx, "u1", topic, d, sampleEntry("depth")))
				}

				depth, ok, err := store.LastDepth(ctx, "u1", topic)
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, 3, depth)

				_, ok, err = store.LastDepth(ctx, "u1", chapter)
				require.NoError(t, err)
				assert.False(t, ok)
			})

			t.Run("Overwrite is last writer wins", func(t *testing.T) {
				store := newStore(t)
				require.NoError(t, store.Put(ctx, "u1", chapter, 1, sampleEntry("first")))
				require.NoError(t, store.Put(ctx, "u1", chapter, 1, sampleEntry("second")))

				got, err := store.Get(ctx, "u1", chapter, 1)
				require.NoError(t, err)
				assert.Equal(t, "second", got.Summary)
			})

			t.Run("Concurrent writers to one key", func(t *testing.T) {
				store := newStore(t)
				var wg sync.WaitGroup
				for i := 0; i < 8; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						assert.NoError(t, store.Put(ctx, "u1", topic, 5, sampleEntry("race")))
					}()
				}
				wg.Wait()

				got, err := store.Get(ctx, "u1", topic, 5)
				require.NoError(t, err)
				assert.Equal(t, "race", got.Summary)
			})
		})
	}
}

func TestSQLiteSummaryStore_PutIsOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := NewSQLiteSummaryStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO summary_cache")).
		WithArgs("u1", "topic", "T1", 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO summary_last_depth")).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err = store.Put(context.Background(), "u1", model.TopicScope("T1"), 1, sampleEntry("x"))

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSummaryStore_Keys(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	store := NewRedisSummaryStore(rdb, time.Hour)

	require.NoError(t, store.Put(context.Background(), "u1", model.ChapterScope("CH1"), 4, sampleEntry("x")))

	assert.True(t, mr.Exists("summary:u1:chapter:CH1:4"))
	last, err := mr.Get("summary:u1:chapter:CH1:last_depth")
	require.NoError(t, err)
	assert.Equal(t, "4", last)
	assert.Equal(t, time.Hour, mr.TTL("summary:u1:chapter:CH1:4"))
}
