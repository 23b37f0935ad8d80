package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 失败时的响应体
type Response struct {
	Error string `json:"error"`
}

type BizError struct {
	Code int
	Msg  string
}

func (e *BizError) Error() string {
	return e.Msg
}

// Is 按状态码与文案比较，便于 errors.Is 判断哨兵错误
func (e *BizError) Is(target error) bool {
	var t *BizError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Msg == t.Msg
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

const InternalErrorMsg = "Internal server error"

func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{Error: msg})
}

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{Error: msg})
}
