// Package notify is the user-facing notification side channel. Every
// storefront operation produces exactly one toast, success or failure,
// with a localized Arabic message chosen from the upstream status.
package notify

import (
	"errors"
	"net/http"

	"souq-gateway/internal/domain"
	"souq-gateway/internal/events"
	"souq-gateway/internal/upstream"
)

// Localized user-facing messages.
const (
	MsgCartAdded       = "تمت إضافة المنتج إلى السلة بنجاح"
	MsgWishlistAdded   = "تمت إضافة المنتج إلى المفضلة"
	MsgWishlistRemoved = "تمت إزالة المنتج من المفضلة"
	MsgWishlistExists  = "المنتج موجود بالفعل في المفضلة"
	MsgSignInRequired  = "يرجى تسجيل الدخول أولاً"
	MsgNotFound        = "المنتج غير موجود"
	MsgBadRequest      = "طلب غير صالح، تحقق من البيانات"
	MsgServerError     = "حدث خطأ في الخادم، حاول مرة أخرى لاحقاً"
	MsgGeneric         = "حدث خطأ غير متوقع، حاول مرة أخرى"
)

// Notifier delivers one transient message per operation.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// BusNotifier publishes toasts on the event bus so any subscribed surface
// can render them.
type BusNotifier struct {
	bus *events.Bus
}

func NewBusNotifier(bus *events.Bus) *BusNotifier {
	return &BusNotifier{bus: bus}
}

func (n *BusNotifier) Success(msg string) {
	n.bus.Publish(events.Toast{Level: "success", Message: msg})
}

func (n *BusNotifier) Error(msg string) {
	n.bus.Publish(events.Toast{Level: "error", Message: msg})
}

// ErrorMessage classifies a failure into one of the four user-facing
// message classes. Classification uses structured status codes, not
// message text.
func ErrorMessage(err error) string {
	if errors.Is(err, domain.ErrSignInRequired) {
		return MsgSignInRequired
	}
	var se *upstream.StatusError
	if errors.As(err, &se) {
		switch {
		case se.Code == http.StatusNotFound:
			return MsgNotFound
		case se.Code >= 400 && se.Code < 500:
			return MsgBadRequest
		case se.Code >= 500:
			return MsgServerError
		}
	}
	return MsgGeneric
}
