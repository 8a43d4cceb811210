// Пакет i18n: переводы Content Dashboard (en, ru).
// Язык и каталог кладутся в контекст запроса middleware; страницы вызывают T(ctx, key).
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// LangCookieName: cookie с выбранным языком.
const LangCookieName = "lang"

// DefaultLang: язык по умолчанию.
const DefaultLang = "en"

var matcher = language.NewMatcher([]language.Tag{language.English, language.Russian})

type contextKey int

const (
	keyLang contextKey = iota
	keyBundle
)

// Bundle: каталоги переводов: lang → key → text.
// Заполняется при старте и далее только читается.
type Bundle struct {
	catalogs map[string]map[string]string
}

// Load читает встроенные каталоги en и ru.
func Load(logger *slog.Logger) (*Bundle, error) {
	b := &Bundle{catalogs: make(map[string]map[string]string)}
	for _, lang := range []string{"en", "ru"} {
		data, err := localeFS.ReadFile("locales/" + lang + ".json")
		if err != nil {
			return nil, fmt.Errorf("i18n: чтение каталога %s: %w", lang, err)
		}
		var messages map[string]string
		if err := json.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("i18n: разбор каталога %s: %w", lang, err)
		}
		b.catalogs[lang] = messages
		logger.Debug("i18n каталог загружен", slog.String("lang", lang), slog.Int("keys", len(messages)))
	}
	return b, nil
}

// Translate возвращает перевод; при отсутствии: английский вариант или сам ключ.
func (b *Bundle) Translate(lang, key string) string {
	if msg, ok := b.catalogs[lang][key]; ok {
		return msg
	}
	if msg, ok := b.catalogs[DefaultLang][key]; ok {
		return msg
	}
	return key
}

// Supported сообщает, поддерживается ли язык.
func Supported(lang string) bool {
	return lang == "en" || lang == "ru"
}

// MatchLanguage выбирает язык по Accept-Language.
func MatchLanguage(acceptLanguage string) string {
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	base, _ := tag.Base()
	if strings.HasPrefix(base.String(), "ru") {
		return "ru"
	}
	return DefaultLang
}

// Middleware определяет язык (cookie → Accept-Language → en) и кладёт его в контекст вместе с каталогом.
func Middleware(b *Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithBundle(r.Context(), b)
			ctx = WithLang(ctx, detectLanguage(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLanguage(r *http.Request) string {
	if cookie, err := r.Cookie(LangCookieName); err == nil && Supported(cookie.Value) {
		return cookie.Value
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return MatchLanguage(accept)
	}
	return DefaultLang
}

// WithLang помещает язык в контекст.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, keyLang, lang)
}

// WithBundle помещает каталог в контекст.
func WithBundle(ctx context.Context, b *Bundle) context.Context {
	return context.WithValue(ctx, keyBundle, b)
}

// LangFromContext возвращает язык из контекста (по умолчанию en).
func LangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(keyLang).(string); ok && lang != "" {
		return lang
	}
	return DefaultLang
}

// T переводит ключ для языка из контекста. Без каталога возвращает ключ.
func T(ctx context.Context, key string) string {
	b, ok := ctx.Value(keyBundle).(*Bundle)
	if !ok || b == nil {
		return key
	}
	return b.Translate(LangFromContext(ctx), key)
}

// Tf: T с подстановкой аргументов.
func Tf(ctx context.Context, key string, args ...any) string {
	return sprintf(T(ctx, key), args...)
}

// sprintf вызывается через переменную: формат приходит из каталога, а не из кода.
var sprintf = fmt.Sprintf
