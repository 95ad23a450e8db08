package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Claves de mensajes de auth (formato Firebase, así el cliente móvil no cambia).
const (
	CodeEmailInUse    = "auth/email-already-in-use"
	CodeInvalidEmail  = "auth/invalid-email"
	CodeWeakPassword  = "auth/weak-password"
	CodeUserNotFound  = "auth/user-not-found"
	CodeWrongPassword = "auth/wrong-password"
	CodeInvalidToken  = "auth/invalid-action-code"
	CodeUnauthorized  = "auth/unauthorized"

	MsgGeneric        = "Something went wrong. Please try again."
	MsgValidationFail = "Please correct the highlighted fields."
)

var supported = []language.Tag{
	language.English, // primero = default del matcher
	language.Turkish,
}

var matcher = language.NewMatcher(supported)

// authMessages: código -> texto por idioma.
var authMessages = map[string]map[language.Tag]string{
	CodeEmailInUse: {
		language.English: "This email address is already in use.",
		language.Turkish: "Bu e-posta adresi zaten kullanımda.",
	},
	CodeInvalidEmail: {
		language.English: "The email address is invalid.",
		language.Turkish: "Geçersiz e-posta adresi.",
	},
	CodeWeakPassword: {
		language.English: "The password is too weak.",
		language.Turkish: "Şifre çok zayıf.",
	},
	CodeUserNotFound: {
		language.English: "No account was found for this email.",
		language.Turkish: "Bu e-posta ile kayıtlı bir hesap bulunamadı.",
	},
	CodeWrongPassword: {
		language.English: "The password is incorrect.",
		language.Turkish: "Şifre hatalı.",
	},
	CodeInvalidToken: {
		language.English: "The reset link is invalid or has expired.",
		language.Turkish: "Sıfırlama bağlantısı geçersiz veya süresi dolmuş.",
	},
	CodeUnauthorized: {
		language.English: "Please sign in again.",
		language.Turkish: "Lütfen tekrar giriş yapın.",
	},
}

// Textos en inglés usados como clave (validaciones, mensajes generales).
var turkish = map[string]string{
	MsgGeneric:        "Bir hata oluştu. Lütfen tekrar deneyin.",
	MsgValidationFail: "Lütfen işaretli alanları düzeltin.",

	"Name is required":  "Ad gerekli",
	"Name is too short": "Ad çok kısa",
	"Name is too long":  "Ad çok uzun",

	"Email is required":     "Email gerekli",
	"Invalid email address": "Geçersiz email adresi",

	"Password is required":                      "Şifre gerekli",
	"Password must be at least 6 characters":    "Şifre en az 6 karakter olmalı",
	"Password must contain an uppercase letter": "Şifre en az bir büyük harf içermeli",
	"Password must contain a lowercase letter":  "Şifre en az bir küçük harf içermeli",
	"Password must contain a number":            "Şifre en az bir sayı içermeli",
	"Password confirmation is required":         "Şifre onayı gerekli",
	"Passwords do not match":                    "Şifreler eşleşmiyor",
	"Select a user type":                        "Kullanıcı türü seçin",

	"Pet name is required":              "Evcil hayvan adı gerekli",
	"Pet type is required":              "Hayvan türü gerekli",
	"Unknown pet type":                  "Bilinmeyen hayvan türü",
	"Breed is required":                 "Cins gerekli",
	"Age must be a non-negative number": "Yaş sıfır veya daha büyük olmalı",
	"Age is out of range":               "Yaş geçerli aralıkta değil",
	"Image must be a valid URL":         "Resim geçerli bir URL olmalı",
	"Description is too long":           "Açıklama çok uzun",
	"Outcome must be like or dislike":   "Sonuç like veya dislike olmalı",
	"Pet is required":                   "Evcil hayvan gerekli",
	"Reset code is required":            "Sıfırlama kodu gerekli",
}

var cat = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	for code, byLang := range authMessages {
		for tag, msg := range byLang {
			_ = b.SetString(tag, code, msg)
		}
	}
	for en, tr := range turkish {
		_ = b.SetString(language.English, en, en)
		_ = b.SetString(language.Turkish, en, tr)
	}
	return b
}

// Supported devuelve los idiomas soportados.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Resolve elige idioma desde un header Accept-Language (o un tag suelto como "tr").
func Resolve(acceptLanguage string) language.Tag {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return supported[0]
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return supported[0]
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return supported[0]
	}
	return supported[idx]
}

// Printer devuelve un printer ligado al catálogo de la app.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(cat))
}

// T traduce una clave; si no existe, devuelve la clave tal cual.
func T(tag language.Tag, key string) string {
	return Printer(tag).Sprintf(key)
}

// AuthMessage mapea un código de auth al texto para el usuario.
// Códigos desconocidos caen al mensaje genérico.
func AuthMessage(tag language.Tag, code string) string {
	if _, ok := authMessages[code]; !ok {
		return T(tag, MsgGeneric)
	}
	return T(tag, code)
}

// Fields traduce un mapa campo -> mensaje.
func Fields(tag language.Tag, fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	p := Printer(tag)
	for k, v := range fields {
		out[k] = p.Sprintf(v)
	}
	return out
}
