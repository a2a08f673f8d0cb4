package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-pricing/internal/minimalprice"
	shop "github.com/angelmondragon/storefront-pricing/internal/storefront"
	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
)

type stubService struct {
	prices      []minimalprice.TemplatePrice
	scale       *minimalprice.Scale
	combination *minimalprice.DefaultCombination
	display     *minimalprice.DisplayPrice
	err         error

	gotShopper shop.Shopper
	gotIDs     []uuid.UUID
	gotID      uuid.UUID
}

func (s *stubService) MinimalPrices(_ context.Context, shopper shop.Shopper, ids []uuid.UUID) ([]minimalprice.TemplatePrice, error) {
	s.gotShopper, s.gotIDs = shopper, ids
	return s.prices, s.err
}

func (s *stubService) QuantityScale(_ context.Context, shopper shop.Shopper, id uuid.UUID) (*minimalprice.Scale, error) {
	s.gotShopper, s.gotID = shopper, id
	return s.scale, s.err
}

func (s *stubService) DefaultCombination(_ context.Context, shopper shop.Shopper, id uuid.UUID) (*minimalprice.DefaultCombination, error) {
	s.gotShopper, s.gotID = shopper, id
	return s.combination, s.err
}

func (s *stubService) DisplayPrice(_ context.Context, shopper shop.Shopper, id uuid.UUID) (*minimalprice.DisplayPrice, error) {
	s.gotShopper, s.gotID = shopper, id
	return s.display, s.err
}

func newRouter(svc minimalprice.Service, shopper *shop.Shopper) http.Handler {
	r := chi.NewRouter()
	if shopper != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(shop.WithShopper(req.Context(), *shopper)))
			})
		})
	}
	r.Post("/sale/get_combination_info_minimal_price", MinimalPrices(svc, nil))
	r.Post("/sale/get_combination_info_pricelist_atributes", PricelistAttributes(svc, nil))
	r.Get("/templates/{templateId}/combination", DefaultCombination(svc, nil))
	r.Get("/templates/{templateId}/price", DisplayPrice(svc, nil))
	return r
}

func usd() *models.Currency {
	return &models.Currency{ID: uuid.New(), Symbol: "$", Position: enums.CurrencyPositionBefore, Rate: decimal.NewFromInt(1), Rounding: decimal.RequireFromString("0.01")}
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) json.RawMessage {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env.Data
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env.Error.Code
}

func TestMinimalPricesEnvelope(t *testing.T) {
	withPrice := uuid.New()
	plain := uuid.New()
	price := decimal.RequireFromString("10.004")
	svc := &stubService{prices: []minimalprice.TemplatePrice{
		{ID: withPrice, DistinctPrices: true, DistinctPricesTmpl: true, Price: &price, Currency: usd()},
		{ID: plain},
	}}
	shopper := shop.Shopper{WebsiteID: uuid.New()}
	body := `{"product_template_ids":["` + withPrice.String() + `","` + plain.String() + `"]}`

	rec := httptest.NewRecorder()
	newRouter(svc, &shopper).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sale/get_combination_info_minimal_price", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotShopper != shopper || len(svc.gotIDs) != 2 {
		t.Fatalf("service called with %+v %v", svc.gotShopper, svc.gotIDs)
	}

	var rows []map[string]any
	if err := json.Unmarshal(decodeData(t, rec), &rows); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows got %d", len(rows))
	}
	if rows[0]["price"] != 10.0 || rows[0]["distinct_prices"] != true {
		t.Fatalf("unexpected priced row %v", rows[0])
	}
	currency, ok := rows[0]["currency"].(map[string]any)
	if !ok || currency["symbol"] != "$" || currency["position"] != "before" {
		t.Fatalf("unexpected currency %v", rows[0]["currency"])
	}
	if _, ok := rows[1]["price"]; ok {
		t.Fatalf("row without minimal price must omit price: %v", rows[1])
	}
	if _, ok := rows[1]["currency"]; ok {
		t.Fatalf("row without minimal price must omit currency: %v", rows[1])
	}
}

func TestMinimalPricesValidation(t *testing.T) {
	shopper := shop.Shopper{WebsiteID: uuid.New()}
	for name, body := range map[string]string{
		"empty list": `{"product_template_ids":[]}`,
		"bad id":     `{"product_template_ids":["x"]}`,
		"no body":    ``,
	} {
		t.Run(name, func(t *testing.T) {
			svc := &stubService{}
			rec := httptest.NewRecorder()
			newRouter(svc, &shopper).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sale/get_combination_info_minimal_price", strings.NewReader(body)))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d", rec.Code)
			}
			if code := decodeErrorCode(t, rec); code != string(pkgerrors.CodeValidation) {
				t.Fatalf("unexpected code %s", code)
			}
			if svc.gotIDs != nil {
				t.Fatal("service must not be called")
			}
		})
	}
}

func TestMissingShoppingContext(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&stubService{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates/"+uuid.NewString()+"/price", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}

func TestPricelistAttributesShape(t *testing.T) {
	productID := uuid.New()
	cur := usd()
	svc := &stubService{scale: &minimalprice.Scale{
		Rows:     []minimalprice.ScaleRow{{MinQty: 20, Price: decimal.NewFromInt(80), Currency: cur}},
		UnitName: "Units",
	}}
	shopper := shop.Shopper{WebsiteID: uuid.New()}

	rec := httptest.NewRecorder()
	body := `{"product_id":"` + productID.String() + `"}`
	newRouter(svc, &shopper).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sale/get_combination_info_pricelist_atributes", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotID != productID {
		t.Fatalf("service called with %s", svc.gotID)
	}
	var pair []json.RawMessage
	if err := json.Unmarshal(decodeData(t, rec), &pair); err != nil {
		t.Fatalf("decode pair: %v", err)
	}
	if len(pair) != 2 {
		t.Fatalf("expected [rows, unit] got %d elements", len(pair))
	}
	var rows []struct {
		MinQty   int     `json:"min_qty"`
		Price    float64 `json:"price"`
		Currency struct {
			Symbol string `json:"symbol"`
		} `json:"currency"`
	}
	if err := json.Unmarshal(pair[0], &rows); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	if len(rows) != 1 || rows[0].MinQty != 20 || rows[0].Price != 80 || rows[0].Currency.Symbol != "$" {
		t.Fatalf("unexpected rows %+v", rows)
	}
	var unit string
	if err := json.Unmarshal(pair[1], &unit); err != nil || unit != "Units" {
		t.Fatalf("unexpected unit %s (%v)", pair[1], err)
	}
}

func TestPricelistAttributesNotFound(t *testing.T) {
	svc := &stubService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	shopper := shop.Shopper{WebsiteID: uuid.New()}

	rec := httptest.NewRecorder()
	body := `{"product_id":"` + uuid.NewString() + `"}`
	newRouter(svc, &shopper).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sale/get_combination_info_pricelist_atributes", strings.NewReader(body)))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestDefaultCombinationHandler(t *testing.T) {
	templateID := uuid.New()
	productID := uuid.New()
	valueID := uuid.New()
	svc := &stubService{combination: &minimalprice.DefaultCombination{TemplateID: templateID, ProductID: productID, AttributeValueIDs: []uuid.UUID{valueID}}}
	shopper := shop.Shopper{WebsiteID: uuid.New()}

	rec := httptest.NewRecorder()
	newRouter(svc, &shopper).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates/"+templateID.String()+"/combination", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var got combinationResponse
	if err := json.Unmarshal(decodeData(t, rec), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.TemplateID != templateID || got.ProductID == nil || *got.ProductID != productID || len(got.AttributeValueIDs) != 1 {
		t.Fatalf("unexpected combination %+v", got)
	}

	rec = httptest.NewRecorder()
	newRouter(svc, &shopper).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates/not-a-uuid/combination", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id got %d", rec.Code)
	}
}

func TestDisplayPriceHandler(t *testing.T) {
	minimal := decimal.NewFromInt(10)
	svc := &stubService{display: &minimalprice.DisplayPrice{
		Price:            "<span>From</span> $\u00a0<span class=\"oe_currency_value\">10.00</span>",
		HasDistinctPrice: true,
		MinimalPrice:     &minimal,
	}}
	shopper := shop.Shopper{WebsiteID: uuid.New()}

	rec := httptest.NewRecorder()
	newRouter(svc, &shopper).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates/"+uuid.NewString()+"/price", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var got displayPriceResponse
	if err := json.Unmarshal(decodeData(t, rec), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Price != svc.display.Price || !got.HasDistinctPrice || got.MinimalPrice == nil || *got.MinimalPrice != 10 {
		t.Fatalf("unexpected display price %+v", got)
	}
}
