package request

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Validator DTO 可提供自訂錯誤訊息，key 為 "Field.tag"（陣列索引以 .* 表示）
type Validator interface {
	GetMessages() ValidatorMessages
}

type ValidatorMessages map[string]string

var indexPattern = regexp.MustCompile(`\[\d+\]`)

// Message 回傳第一個驗證錯誤對應的自訂訊息；request 沒有實作 Validator 或沒有對應 key 時 ok=false
func Message(request any, err error) (string, bool) {
	v, isValidator := request.(Validator)
	if !isValidator {
		return "", false
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "", false
	}
	messages := v.GetMessages()
	for _, fe := range verrs {
		field := indexPattern.ReplaceAllString(fe.Field(), ".*")
		if msg, ok := messages[field+"."+fe.Tag()]; ok {
			return msg, true
		}
	}
	return "", false
}
