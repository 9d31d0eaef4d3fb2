package i18n

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abdopcnet/payments/internal/constants"

	"github.com/gin-gonic/gin"
)

func TestTranslateFallsBackToEnglish(t *testing.T) {
	if got := T(constants.LocaleEnUS, "error.code_required"); got != "Authorization code is required" {
		t.Fatalf("unexpected english message: %q", got)
	}
	if got := T("fr-FR", "error.code_required"); got != "Authorization code is required" {
		t.Fatalf("unknown locale should fall back to english, got %q", got)
	}
	if got := T(constants.LocaleEnUS, "missing.key"); got != "missing.key" {
		t.Fatalf("unknown key should pass through, got %q", got)
	}
}

func TestTranslateArabicCatalog(t *testing.T) {
	got := T(constants.LocaleArEG, "error.code_required")
	if got == "" || got == "error.code_required" || got == T(constants.LocaleEnUS, "error.code_required") {
		t.Fatalf("expected arabic translation, got %q", got)
	}
}

func TestSprintfFormatsArguments(t *testing.T) {
	got := Sprintf(constants.LocaleEnUS, "error.currency_not_supported", "GBP")
	if !strings.Contains(got, "GBP") {
		t.Fatalf("expected currency in message, got %q", got)
	}
}

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newContext := func(target, acceptLanguage string) *gin.Context {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if acceptLanguage != "" {
			req.Header.Set("Accept-Language", acceptLanguage)
		}
		c.Request = req
		return c
	}

	if got := ResolveLocale(newContext("/ping?lang=ar-EG", "")); got != constants.LocaleArEG {
		t.Fatalf("query locale want ar-EG got %s", got)
	}
	if got := ResolveLocale(newContext("/ping", "ar-EG,en;q=0.8")); got != constants.LocaleArEG {
		t.Fatalf("header locale want ar-EG got %s", got)
	}
	if got := ResolveLocale(newContext("/ping", "ar")); got != constants.LocaleArEG {
		t.Fatalf("language-only tag want ar-EG got %s", got)
	}
	if got := ResolveLocale(newContext("/ping", "fr-FR")); got != constants.LocaleEnUS {
		t.Fatalf("unsupported header want en-US got %s", got)
	}
	if got := ResolveLocale(newContext("/ping", "")); got != constants.LocaleEnUS {
		t.Fatalf("default want en-US got %s", got)
	}
}
