package ingest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dompet/internal/ingest"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

type fakeBatchCreator struct {
	calls    int
	received []transaction.CreateParams
	count    int
	err      error
}

func (f *fakeBatchCreator) CreateBatch(_ context.Context, params []transaction.CreateParams) (*transaction.BatchResult, error) {
	f.calls++
	f.received = params

	if f.err != nil {
		return nil, f.err
	}

	return &transaction.BatchResult{Count: f.count}, nil
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("writes accepted rows in one call", func(t *testing.T) {
		store := &fakeBatchCreator{count: 2}
		svc := ingest.NewService(store, "IDR")

		rows := []ingest.DraftRow{
			draft("50000", "Lunch"),
			draft("0", "Zero"),
			draft("-10", "Negative"),
			draft("25.000", ""),
			{Type: "expense", Category: "transport", Amount: "15000", Description: "Ojek", Date: "2026-03-06"},
		}

		out, err := svc.Submit(ctx, "bima", rows)
		require.NoError(t, err)

		assert.Equal(t, 1, store.calls)
		assert.Equal(t, 2, out.Inserted)
		assert.Len(t, out.Rejected, 3)

		require.Len(t, store.received, 2)
		assert.Equal(t, "ayu", store.received[0].Owner)
		assert.Equal(t, "bima", store.received[1].Owner, "blank owner takes the submitter")
		assert.Equal(t, "IDR", store.received[1].Currency)
	})

	t.Run("reports the store count", func(t *testing.T) {
		store := &fakeBatchCreator{count: 1}
		svc := ingest.NewService(store, "IDR")

		out, err := svc.Submit(ctx, "ayu", []ingest.DraftRow{draft("1", "a"), draft("2", "b")})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Inserted)
	})

	t.Run("zero valid rows is a batch error", func(t *testing.T) {
		store := &fakeBatchCreator{}
		svc := ingest.NewService(store, "IDR")

		_, err := svc.Submit(ctx, "ayu", []ingest.DraftRow{draft("0", "a"), draft("10", "")})
		require.ErrorIs(t, err, ingest.ErrNoValidRows)

		var batchErr *ingest.BatchError
		require.ErrorAs(t, err, &batchErr)
		assert.Equal(t, 0, batchErr.Accepted)
		assert.Equal(t, 2, batchErr.Rejected)
		assert.Zero(t, store.calls)
	})

	t.Run("empty batch is a batch error", func(t *testing.T) {
		store := &fakeBatchCreator{}
		svc := ingest.NewService(store, "IDR")

		_, err := svc.Submit(ctx, "ayu", nil)
		assert.ErrorIs(t, err, ingest.ErrNoValidRows)
		assert.Zero(t, store.calls)
	})

	t.Run("rows naming a foreign owner are rejected", func(t *testing.T) {
		store := &fakeBatchCreator{count: 2}
		svc := ingest.NewService(store, "IDR", "ayu", "bima")

		foreign := draft("20000", "Dinner")
		foreign.Owner = "mallory"

		blank := draft("15000", "Ojek")
		blank.Owner = ""

		out, err := svc.Submit(ctx, "bima", []ingest.DraftRow{draft("50000", "Lunch"), foreign, blank})
		require.NoError(t, err)

		require.Len(t, out.Rejected, 1)
		assert.Equal(t, 2, out.Rejected[0].Row)
		assert.ErrorIs(t, out.Rejected[0], ingest.ErrUnknownOwner)

		require.Len(t, store.received, 2)
		assert.Equal(t, "ayu", store.received[0].Owner)
		assert.Equal(t, "bima", store.received[1].Owner)
	})

	t.Run("submitter outside the workspace cannot fill blank owners", func(t *testing.T) {
		store := &fakeBatchCreator{}
		svc := ingest.NewService(store, "IDR", "ayu", "bima")

		row := draft("1000", "a")
		row.Owner = ""

		_, err := svc.Submit(ctx, "mallory", []ingest.DraftRow{row})
		require.ErrorIs(t, err, ingest.ErrNoValidRows)
		assert.Zero(t, store.calls)
	})

	t.Run("store failure", func(t *testing.T) {
		store := &fakeBatchCreator{err: errors.New("connection reset")}
		svc := ingest.NewService(store, "IDR")

		_, err := svc.Submit(ctx, "ayu", []ingest.DraftRow{draft("1", "a")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})
}
