package session

import (
	"strings"

	domainerrors "github.com/storefront/storefront-admin/internal/errors"
)

// Fallbacks used when the server gave no message.
const (
	LoginFailedMessage    = "اطلاعات ورود اشتباه است."
	RegisterFailedMessage = "ثبت‌نام ناموفق بود. لطفاً دوباره تلاش کنید."
	PersistFailedMessage  = "ذخیره اطلاعات ورود ممکن نشد."
)

// authMessages maps raw server strings to user-facing text. Unmapped strings
// pass through verbatim.
var authMessages = map[string]string{
	"Invalid credentials":    "اطلاعات ورود اشتباه است.",
	"User not found":         "کاربر پیدا نشد.",
	"email must be an email": "ایمیل باید یک آدرس ایمیل معتبر باشد",
}

// localize returns the user-facing message for a failed auth call.
func localize(err error, fallback string) string {
	raw, ok := domainerrors.ServerMessage(err)
	if !ok {
		return fallback
	}

	parts := strings.Split(raw, "; ")
	for i, p := range parts {
		if translated, ok := authMessages[p]; ok {
			parts[i] = translated
		}
	}
	return strings.Join(parts, "\n")
}
