package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HTTPError はusecaseからhandlerへ返すエラー（ステータス＋ユーザー向けメッセージ）
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// internalError は想定外のエラーを相関IDつきでログし、
// クライアントには詳細を出さない500を返す。
func internalError(log *zap.Logger, op string, err error) error {
	errorID := uuid.NewString()
	log.Error("internal error",
		zap.String("op", op),
		zap.String("error_id", errorID),
		zap.Error(err),
	)
	return NewHTTPError(http.StatusInternalServerError, "internal error")
}
