package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/devesh1011/EtherBlinks/pkg/link"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recipient = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

func newServer(t *testing.T) (*httptest.Server, map[string]models.CreateActionInput) {
	t.Helper()
	stored := map[string]models.CreateActionInput{}
	id := uuid.New()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/create-action", func(w http.ResponseWriter, r *http.Request) {
		var in models.CreateActionInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		w.Header().Set("Content-Type", "application/json")
		if in.RecipientAddress == "" && in.ContractAddress == "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid recipient_address: is required"}`))
			return
		}
		stored["Qm7x"] = in
		_ = json.NewEncoder(w).Encode(models.CreateActionResponse{ID: id, ShortID: "Qm7x", ShortURL: "http://blink/a/tip-Qm7x"})
	})
	mux.HandleFunc("GET /api/execute/{shortId}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		in, ok := stored[r.PathValue("shortId")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"action not found"}`))
			return
		}
		a, _ := in.Action()
		rec, _ := models.NewActionRecord(a)
		rec.ID = id
		rec.ShortID = r.PathValue("shortId")
		_ = json.NewEncoder(w).Encode(rec)
	})
	mux.HandleFunc("GET /api/tx/{hash}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.TransactionStatus{Hash: r.PathValue("hash"), Status: models.TxPending})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, stored
}

func TestClientBacksStoreCodec(t *testing.T) {
	srv, _ := newServer(t)
	codec := link.NewStore(New(srv.URL))
	ctx := context.Background()

	tip := models.Tip{RecipientAddress: recipient, AmountNative: "0.01", Description: "gm"}
	token, err := codec.Encode(ctx, tip)
	require.NoError(t, err)
	assert.Equal(t, "tip-Qm7x", token)

	got, err := codec.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, tip, got)

	_, err = codec.Resolve(ctx, "tip-missing")
	assert.ErrorIs(t, err, models.ErrActionNotFound)
}

func TestClientValidationError(t *testing.T) {
	srv, _ := newServer(t)

	_, err := New(srv.URL).CreateLink(context.Background(), models.CreateActionInput{ActionType: models.ActionTip, TipAmountEth: "1"})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "recipient_address")
}

func TestClientUnreachable(t *testing.T) {
	srv, _ := newServer(t)
	srv.Close()

	_, err := New(srv.URL).CreateAction(context.Background(), models.Tip{RecipientAddress: recipient, AmountNative: "1"})

	var swe *models.StoreWriteError
	assert.ErrorAs(t, err, &swe)
}

func TestClientTransactionStatus(t *testing.T) {
	srv, _ := newServer(t)

	st, err := New(srv.URL).TransactionStatus(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, models.TxPending, st.Status)
	assert.Equal(t, "0xabc", st.Hash)
}
