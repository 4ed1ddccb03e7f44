package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/devesh1011/EtherBlinks/pkg/cache"
	"github.com/devesh1011/EtherBlinks/pkg/chain"
	"github.com/devesh1011/EtherBlinks/pkg/link"
	"github.com/devesh1011/EtherBlinks/pkg/middleware"
	"github.com/devesh1011/EtherBlinks/pkg/service"
	"github.com/devesh1011/EtherBlinks/pkg/utils"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	baseURL   = "https://blink.example"
	recipient = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	contract  = "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memRepo struct {
	mu       sync.Mutex
	records  map[string]models.ActionRecord
	writeErr error
}

func (r *memRepo) CreateAction(_ context.Context, rec models.ActionRecord) (models.ActionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return models.ActionRecord{}, &models.StoreWriteError{Err: r.writeErr}
	}
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	r.records[rec.ShortID] = rec
	return rec, nil
}

func (r *memRepo) GetActionByShortID(_ context.Context, shortID string) (models.ActionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[shortID]
	if !ok {
		return models.ActionRecord{}, models.ErrActionNotFound
	}
	return rec, nil
}

type healthFunc func(context.Context) error

func (f healthFunc) Ping(ctx context.Context) error { return f(ctx) }

type receipts map[common.Hash]*types.Receipt

func (r receipts) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	if rec, ok := r[hash]; ok {
		return rec, nil
	}
	return nil, ethereum.NotFound
}

type fixture struct {
	router *gin.Engine
	repo   *memRepo
	health error
}

func newFixture(t *testing.T, encoder func(link.Encoder) link.Encoder, cfg ...Config) *fixture {
	t.Helper()
	f := &fixture{repo: &memRepo{records: map[string]models.ActionRecord{}}}

	actions := service.NewActionService(f.repo, cache.Nop{}, utils.NopNotifier{}, baseURL)
	store := link.NewStore(actions)
	var enc link.Encoder = store
	if encoder != nil {
		enc = encoder(store)
	}

	svc := &service.Service{
		Action: actions,
		Link:   service.NewLinkService(enc, link.Dispatch{Store: store, Inline: link.Inline{}}, baseURL, chain.EtherlinkTestnet),
		Transaction: service.NewTransactionService(receipts{
			common.HexToHash("0xabc"): {Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(5)},
		}, chain.EtherlinkTestnet),
		Health: healthFunc(func(context.Context) error { return f.health }),
		Chain:  chain.EtherlinkTestnet,
	}

	var handlerCfg Config
	if len(cfg) > 0 {
		handlerCfg = cfg[0]
	}
	f.router = NewHandler(svc, handlerCfg).InitRoute()
	return f
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func postJSON(path string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateActionAndExecute(t *testing.T) {
	f := newFixture(t, nil)

	w := f.do(postJSON("/api/create-action", map[string]string{
		"action_type":      "nft_sale",
		"contract_address": contract,
		"token_id":         "42",
		"price":            "1.5",
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.CreateActionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ShortID)
	assert.Equal(t, baseURL+"/a/nft_sale-"+resp.ShortID, resp.ShortURL)

	w = f.do(httptest.NewRequest(http.MethodGet, "/api/execute/"+resp.ShortID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var rec models.ActionRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, resp.ID, rec.ID)
	assert.Equal(t, models.ActionNftSale, rec.ActionType)
	assert.Equal(t, "42", *rec.TokenID)

	w = f.do(httptest.NewRequest(http.MethodGet, "/a/nft_sale-"+resp.ShortID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "You are about to buy NFT #42 for 1.5 XTZ.")
	assert.Contains(t, body, "Buy NFT")
	assert.Contains(t, body, "0xd96a094a")
}

func TestCreateActionValidation(t *testing.T) {
	f := newFixture(t, nil)

	w := f.do(postJSON("/api/create-action", map[string]string{
		"action_type":    "tip",
		"tip_amount_eth": "0.01",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid recipient_address: is required"}`, w.Body.String())

	w = f.do(postJSON("/api/create-action", map[string]string{"action_type": "swap"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/create-action", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, f.do(req).Code)
	assert.Empty(t, f.repo.records)
}

func TestCreateActionStoreFailure(t *testing.T) {
	f := newFixture(t, nil)
	f.repo.writeErr = errors.New("connection refused")

	w := f.do(postJSON("/api/create-action", map[string]string{
		"action_type":       "tip",
		"recipient_address": recipient,
		"tip_amount_eth":    "0.01",
	}))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"failed to store action"}`, w.Body.String())
}

func TestGetActionNotFound(t *testing.T) {
	f := newFixture(t, nil)

	w := f.do(httptest.NewRequest(http.MethodGet, "/api/execute/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"action not found"}`, w.Body.String())
}

func TestActionPageInvalidLinks(t *testing.T) {
	f := newFixture(t, nil)

	for _, token := range []string{"tip-doesnotexist", "tip-", "%21%21%21", "eyJ0eXBlIjoic3dhcCJ9"} {
		w := f.do(httptest.NewRequest(http.MethodGet, "/a/"+token, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, token)
		assert.Contains(t, w.Body.String(), invalidLinkMessage, token)
	}
}

func TestActionPageInline(t *testing.T) {
	f := newFixture(t, nil)

	token, err := link.Inline{}.Encode(context.Background(), models.Tip{RecipientAddress: recipient, AmountNative: "0.01"})
	require.NoError(t, err)

	w := f.do(httptest.NewRequest(http.MethodGet, "/a/"+token, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You are about to send a 0.01 XTZ tip.")
	assert.Contains(t, w.Body.String(), "0x2386f26fc10000")
}

func TestActionPageFailedIsTerminal(t *testing.T) {
	f := newFixture(t, nil)

	token, err := link.Inline{}.Encode(context.Background(), models.Tip{RecipientAddress: recipient, AmountNative: "0.01"})
	require.NoError(t, err)

	w := f.do(httptest.NewRequest(http.MethodGet, "/a/"+token, nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `if (state !== "idle") {`)
	assert.NotContains(t, body, `state !== "failed"`)
	assert.Contains(t, body, `|| state === "failed";`)
}

func TestActionPageWalletChain(t *testing.T) {
	f := newFixture(t, nil)

	token, err := link.Inline{}.Encode(context.Background(), models.Tip{RecipientAddress: recipient, AmountNative: "0.01"})
	require.NoError(t, err)

	w := f.do(httptest.NewRequest(http.MethodGet, "/a/"+token, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `nativeCurrency: { name: "Tezos", symbol: "XTZ"`)
}

func TestActionPageUnexecutable(t *testing.T) {
	f := newFixture(t, nil)

	token, err := link.Inline{}.Encode(context.Background(), models.Tip{RecipientAddress: "0x1234", AmountNative: "0.01"})
	require.NoError(t, err)

	w := f.do(httptest.NewRequest(http.MethodGet, "/a/"+token, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "This action cannot be executed")
	assert.NotContains(t, w.Body.String(), `id="execute"`)
}

func TestCreateLinkForm(t *testing.T) {
	f := newFixture(t, func(link.Encoder) link.Encoder { return link.Inline{} })

	w := f.do(httptest.NewRequest(http.MethodGet, "/create-link", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="recipient_address"`)

	form := url.Values{
		"action_type":       {"tip"},
		"recipient_address": {recipient},
		"tip_amount_eth":    {"0.5"},
	}
	req := httptest.NewRequest(http.MethodPost, "/create-link", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = f.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), baseURL+"/a/")
	assert.Empty(t, f.repo.records)

	form.Set("tip_amount_eth", "-1")
	req = httptest.NewRequest(http.MethodPost, "/create-link", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = f.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid tip_amount_eth")
}

func TestTransactionStatus(t *testing.T) {
	f := newFixture(t, nil)
	mined := common.HexToHash("0xabc").Hex()

	w := f.do(httptest.NewRequest(http.MethodGet, "/api/tx/"+mined, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var st models.TransactionStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, models.TxConfirmed, st.Status)
	assert.Equal(t, "https://testnet.explorer.etherlink.com/tx/"+mined, st.ExplorerURL)

	w = f.do(httptest.NewRequest(http.MethodGet, "/api/tx/0xnothex", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, http.StatusOK, f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)

	f.health = errors.New("dial tcp: connection refused")
	w := f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"database unavailable"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestStaticIcon(t *testing.T) {
	f := newFixture(t, nil)
	w := f.do(httptest.NewRequest(http.MethodGet, "/static/tip_icon.png", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestRateLimitedCreate(t *testing.T) {
	f := newFixture(t, nil, Config{RateLimiter: middleware.NewIPRateLimiter(0.001, 1)})
	body := map[string]string{
		"action_type":       "tip",
		"recipient_address": recipient,
		"tip_amount_eth":    "0.01",
	}

	assert.Equal(t, http.StatusOK, f.do(postJSON("/api/create-action", body)).Code)
	assert.Equal(t, http.StatusTooManyRequests, f.do(postJSON("/api/create-action", body)).Code)
	assert.Len(t, f.repo.records, 1)

	// Reads are not limited.
	assert.Equal(t, http.StatusOK, f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)
}
