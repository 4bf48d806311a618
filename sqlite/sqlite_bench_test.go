package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkReplaceDocuments compares catalog replacement between WAL and
// rollback journal modes for a tree the size of doc/ci.
func BenchmarkReplaceDocuments(b *testing.B) {
	const docsPerRun = 400

	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkReplaceDocuments(b, false, docsPerRun)
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkReplaceDocuments(b, true, docsPerRun)
	})
}

func benchmarkReplaceDocuments(b *testing.B, useWAL bool, docsPerRun int) {
	b.Helper()

	dbPath := filepath.Join(b.TempDir(), "bench.db")

	db := sqlite.NewDB(dbPath)
	if !useWAL {
		db.JournalMode = "DELETE"
	}
	require.NoError(b, db.Open())

	ctx := context.Background()

	defer func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	runs := sqlite.NewRunService(db)
	run := &docsync.Run{URL: docsync.DefaultArchiveURL, Status: docsync.StatusSuccess, StartedAt: time.Now()}
	require.NoError(b, runs.CreateRun(ctx, run))

	docs := make([]*docsync.Document, docsPerRun)
	for i := range docs {
		docs[i] = &docsync.Document{
			Path:        fmt.Sprintf("section%d/page%d.md", i%20, i),
			Title:       fmt.Sprintf("Page %d", i),
			Description: "Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
			Hash:        fmt.Sprintf("%016x", i),
			Size:        int64(1000 + i),
		}
	}

	svc := sqlite.NewDocumentService(db)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := svc.ReplaceDocuments(ctx, run.ID, docs); err != nil {
			b.Fatal(err)
		}
	}
}
