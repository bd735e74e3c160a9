package validate

import (
	"fmt"
	"reflect"
	"strings"

	"modelhub/internal/core"
	cErr "modelhub/internal/pkg/error"
	"modelhub/internal/pkg/request"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// 輸出格式化的 validator error（欄位名/型別/規則列表）
func ValidationErrorResponse(obj interface{}, err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok {
		var b strings.Builder
		b.WriteString("Validation error:\n")
		for _, fe := range errs {
			field := fieldName(obj, fe.StructField())
			ftype := fieldType(obj, fe.StructField())
			format := getFieldFormat(obj, fe.StructField())
			b.WriteString(fmt.Sprintf(" - Field \"%s\" (type: %s) failed the '%s' validation (rules: %v)\n",
				field, ftype, fe.Tag(), format))
		}
		return b.String()
	}
	return fmt.Sprintf("Validation error: %s", err.Error())
}

// 依序找 uri / form / json tag 作為對外欄位名
func fieldName(obj interface{}, structField string) string {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(structField); ok {
		for _, key := range []string{"uri", "form", "json"} {
			tag := f.Tag.Get(key)
			if tag != "" && tag != "-" {
				return strings.Split(tag, ",")[0]
			}
		}
	}
	return structField
}

func fieldType(obj interface{}, structField string) string {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(structField); ok {
		return f.Type.String()
	}
	return ""
}

func getFieldFormat(obj interface{}, structField string) []string {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(structField); ok {
		tag := f.Tag.Get("binding")
		if tag != "" {
			return strings.Split(tag, ",")
		}
	}
	return nil
}

// BindURI 綁定路徑參數；有自訂訊息（request.Validator）時優先使用
func BindURI(c *gin.Context, req any) (cause error, responseErr error) {
	if err := c.ShouldBindUri(req); err != nil {
		if msg, ok := request.Message(req, err); ok {
			return err, cErr.ValidatePathParamsErr(msg)
		}
		return err, cErr.ValidatePathParamsErr(ValidationErrorResponse(req, err))
	}
	return nil, nil
}

func BindQuery(c *gin.Context, req any) (cause error, responseErr error) {
	if err := c.ShouldBindQuery(req); err != nil {
		return err, cErr.BadRequestParams(ValidationErrorResponse(req, err))
	}
	return nil, nil
}

// ParseProviders 逗號分隔或重複參數皆可，未知名稱回傳錯誤
func ParseProviders(values []string) ([]core.ProviderName, error) {
	var out []core.ProviderName
	seen := make(map[core.ProviderName]bool)
	for _, v := range values {
		for _, name := range strings.Split(v, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			if !core.IsValidProviderName(name) {
				return nil, fmt.Errorf("unknown provider %q", name)
			}
			p := core.ProviderName(name)
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out, nil
}
