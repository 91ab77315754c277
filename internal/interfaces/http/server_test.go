package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/Vitrine-api/internal/application/analytics"
	"github.com/jhoicas/Vitrine-api/internal/application/auth"
	"github.com/jhoicas/Vitrine-api/internal/application/catalog"
	"github.com/jhoicas/Vitrine-api/internal/application/referral"
	"github.com/jhoicas/Vitrine-api/internal/application/storefront"
	"github.com/jhoicas/Vitrine-api/internal/application/usecase"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/media"
	"github.com/jhoicas/Vitrine-api/internal/infrastructure/feed"
	"github.com/jhoicas/Vitrine-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Vitrine-api/internal/interfaces/http"
	"github.com/jhoicas/Vitrine-api/internal/testutil/memstore"
	pkgjwt "github.com/jhoicas/Vitrine-api/pkg/jwt"
	"github.com/jhoicas/Vitrine-api/pkg/metrics"
)

// testServer API completa sobre el store en memoria.
type testServer struct {
	app   *fiber.App
	store *memstore.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithConfig(t, fiber.Config{Immutable: true})
}

// newTestServerWithConfig permite probar los handlers con la config por defecto de fiber,
// donde los parámetros de ruta apuntan al buffer reutilizable del request.
func newTestServerWithConfig(t *testing.T, cfg fiber.Config) *testServer {
	t.Helper()
	s := memstore.New()
	tx := &memstore.TxRunner{S: s}
	log := zerolog.Nop()
	reg := prometheus.NewRegistry()

	registry := media.NewBlobRegistry()
	t.Cleanup(func() { _ = registry.Close() })

	loader := catalog.NewLoader(s.Images(), s.Tiers())
	limits := catalog.NewImageLimitUseCase(s.Users(), s.Products(), s.Images())
	categoryUC := usecase.NewCategoryUseCase(s.Categories(), s.Products())
	exportUC := catalog.NewExportUseCase(s.Users(), s.Products(), loader, pdf.NewMarotoPDFGenerator(), feed.NewRSSEncoder())

	deps := apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(s.Users(), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}, entity.DefaultMaxImagesPerProduct),
		ProductUC:    usecase.NewProductUseCase(s.Products(), s.Tiers(), s.Categories(), loader, tx, log),
		ImageUC:      usecase.NewImageUseCase(s.Products(), s.Images(), limits, registry, log),
		CategoryUC:   categoryUC,
		UserUC:       usecase.NewUserUseCase(s.Users()),
		PriceQuoteUC: usecase.NewPriceQuoteUseCase(s.Products(), s.Tiers()),
		CopyUC: catalog.NewCopyUseCase(s.Products(), s.Images(), s.Tiers(), s.Categories(),
			tx, categoryUC, metrics.NewCatalogMetrics(reg), log),
		ImageLimitUC: limits,
		ExportUC:     exportUC,
		StorefrontUC: storefront.NewUseCase(s.Users(), s.Products(), loader, nil, log),
		ReferralUC: referral.NewUseCase(s.Users(), s.Referrals(), tx, referral.Config{
			CommissionRate:  decimal.RequireFromString("0.10"),
			PayoutMinAmount: decimal.NewFromInt(50),
		}, log),
		DashboardUC: appanalytics.NewDashboardUseCase(s.Analytics(), s.Users(), s.Referrals()),
		JWTSecret:   testJWTSecret,
		PublicURL:   "https://vitrine.test",
		HTTPMetrics: metrics.NewHTTPMetrics(reg),
		Gatherer:    reg,
	}

	app := fiber.New(cfg)
	apphttp.Router(app, deps)
	return &testServer{app: app, store: s}
}

// bearer token válido para el usuario sembrado.
func bearer(t *testing.T, u *entity.User) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, u.ID, u.Role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// do lanza la petición con body JSON opcional y devuelve status y cuerpo.
func (ts *testServer) do(t *testing.T, method, path, auth string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decodeMap(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m), string(raw))
	return m
}
