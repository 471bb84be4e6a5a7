package shared

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

var jsonAPI = sonic.Config{
	UseNumber:            true,
	EscapeHTML:           false,
	SortMapKeys:          false,
	CompactMarshaler:     true,
	NoQuoteTextMarshaler: true,
	NoNullSliceOrMap:     true,
}.Froze()

var (
	successResponse      = mustMarshal(Response{Code: 200, Message: "Success"})
	createdResponse      = mustMarshal(Response{Code: 201, Message: "Created"})
	notFoundResponse     = mustMarshal(Response{Code: 404, Message: "Not Found"})
	unauthorizedResponse = mustMarshal(Response{Code: 401, Message: "Unauthorized"})
	forbiddenResponse    = mustMarshal(Response{Code: 403, Message: "Forbidden"})
)

func mustMarshal(v interface{}) []byte {
	b, _ := jsonAPI.Marshal(v)
	return b
}

func writePrebuilt(c *fiber.Ctx, httpCode int, body []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(httpCode).Send(body)
}

func ResponseJSON(c *fiber.Ctx, httpCode int, message string, data interface{}) error {
	if data == nil {
		switch {
		case httpCode == 200 && message == "Success":
			return writePrebuilt(c, httpCode, successResponse)
		case httpCode == 201 && message == "Created":
			return writePrebuilt(c, httpCode, createdResponse)
		case httpCode == 401 && message == "Unauthorized":
			return writePrebuilt(c, httpCode, unauthorizedResponse)
		case httpCode == 403 && message == "Forbidden":
			return writePrebuilt(c, httpCode, forbiddenResponse)
		case httpCode == 404 && message == "Not Found":
			return writePrebuilt(c, httpCode, notFoundResponse)
		}
	}

	body, err := jsonAPI.Marshal(Response{
		Code:    httpCode,
		Message: message,
		Data:    data,
	})
	if err != nil {
		return err
	}
	return writePrebuilt(c, httpCode, body)
}

func ResponseOK(c *fiber.Ctx, data interface{}) error {
	return ResponseJSON(c, 200, "Success", data)
}

func ResponseCreated(c *fiber.Ctx, data interface{}) error {
	return ResponseJSON(c, 201, "Created", data)
}

func ResponseNotFound(c *fiber.Ctx) error {
	return ResponseJSON(c, 404, "Not Found", nil)
}

func ResponseUnauthorized(c *fiber.Ctx) error {
	return ResponseJSON(c, 401, "Unauthorized", nil)
}

func ResponseForbidden(c *fiber.Ctx) error {
	return ResponseJSON(c, 403, "Forbidden", nil)
}

func ResponseInternalError(c *fiber.Ctx, err error) error {
	return ResponseJSON(c, 500, "Internal Server Error", err.Error())
}
