package database

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"schedbot/internal/domain/entities"
	"schedbot/internal/ports/output"
)

// runRepositoryContract exercises the behaviour every EventRepository must share.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) output.EventRepository) {
	t.Run("insert assigns id and scan returns UTC text", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		at := time.Date(2030, 1, 1, 1, 0, 0, 0, time.FixedZone("CET", 3600))
		event := &entities.Event{GuildID: 1, ChannelID: 42, EventTime: at.UTC(), Description: "X"}
		if err := repo.Insert(ctx, event); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		if event.ID == 0 {
			t.Fatal("Insert did not assign an id")
		}
		rows, err := repo.ScanAll(ctx)
		if err != nil {
			t.Fatalf("ScanAll: %v", err)
		}
		want := entities.EventRecord{ID: event.ID, GuildID: 1, ChannelID: 42, EventTime: "2030-01-01T00:00:00+00:00", Description: "X"}
		if len(rows) != 1 || rows[0] != want {
			t.Fatalf("ScanAll = %+v, want [%+v]", rows, want)
		}
	})

	t.Run("large snowflake ids survive", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		event := &entities.Event{GuildID: 1100000000000000001, ChannelID: 1200000000000000002, EventTime: time.Now().UTC(), Description: "big"}
		if err := repo.Insert(ctx, event); err != nil {
			t.Fatal(err)
		}
		rows, err := repo.ScanAll(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if rows[0].GuildID != event.GuildID || rows[0].ChannelID != event.ChannelID {
			t.Fatalf("ids = %d/%d", rows[0].GuildID, rows[0].ChannelID)
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		event := &entities.Event{GuildID: 1, ChannelID: 2, EventTime: time.Now().UTC(), Description: "d"}
		if err := repo.Insert(ctx, event); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 2; i++ {
			if err := repo.Delete(ctx, event.ID); err != nil {
				t.Fatalf("Delete #%d: %v", i+1, err)
			}
		}
		if err := repo.Delete(ctx, 987654321); err != nil {
			t.Fatalf("Delete(unknown): %v", err)
		}
		rows, err := repo.ScanAll(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 0 {
			t.Fatalf("rows after delete = %+v", rows)
		}
	})

	t.Run("ids are never reused", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		first := &entities.Event{GuildID: 1, ChannelID: 2, EventTime: time.Now().UTC(), Description: "a"}
		if err := repo.Insert(ctx, first); err != nil {
			t.Fatal(err)
		}
		if err := repo.Delete(ctx, first.ID); err != nil {
			t.Fatal(err)
		}
		second := &entities.Event{GuildID: 1, ChannelID: 2, EventTime: time.Now().UTC(), Description: "b"}
		if err := repo.Insert(ctx, second); err != nil {
			t.Fatal(err)
		}
		if second.ID <= first.ID {
			t.Fatalf("id reused: first=%d second=%d", first.ID, second.ID)
		}
	})

	t.Run("inserts during scans never produce torn rows", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		const writers, perWriter = 4, 20

		var wg sync.WaitGroup
		errs := make(chan error, writers*perWriter+1)
		stop := make(chan struct{})
		scanDone := make(chan struct{})

		go func() {
			defer close(scanDone)
			for {
				select {
				case <-stop:
					return
				default:
				}
				rows, err := repo.ScanAll(ctx)
				if err != nil {
					errs <- fmt.Errorf("scan: %w", err)
					return
				}
				for _, rec := range rows {
					if _, err := rec.Event(); err != nil || rec.Description == "" {
						errs <- fmt.Errorf("torn row %+v: %v", rec, err)
						return
					}
				}
			}
		}()

		for w := 0; w < writers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < perWriter; i++ {
					e := &entities.Event{GuildID: 1, ChannelID: int64(w), EventTime: time.Now().UTC(), Description: fmt.Sprintf("w%d-%d", w, i)}
					if err := repo.Insert(ctx, e); err != nil {
						errs <- fmt.Errorf("insert: %w", err)
						return
					}
				}
			}(w)
		}
		wg.Wait()
		close(stop)
		<-scanDone
		close(errs)
		for err := range errs {
			t.Fatal(err)
		}

		rows, err := repo.ScanAll(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != writers*perWriter {
			t.Fatalf("stored %d rows, want %d", len(rows), writers*perWriter)
		}
	})
}
