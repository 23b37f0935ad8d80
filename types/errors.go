package types

import (
	"net/http"

	"HotCams/pkg/response"
)

// 资料校验文案，客户端表单与服务端共用
const (
	MsgUsernameRequired  = "Username is required."
	MsgBirthdayRequired  = "Date of birth is required."
	MsgBirthdayInvalid   = "Date of birth must be a valid date (YYYY-MM-DD)."
	MsgUnderage          = "You must be 18 or older to use this platform."
	MsgRoleInvalid       = "Please choose to join as a viewer or a performer."
	MsgStageNameRequired = "Stage name is required for performers."
	MsgGenderRequired    = "Gender is required for performers."
	MsgCategoryRequired  = "Category is required for performers."
	MsgWalletRequired    = "Connect a wallet before creating a profile."
)

// BadRequest 把校验错误原文作为 400 返回
func BadRequest(err error) *response.BizError {
	return response.NewError(http.StatusBadRequest, err.Error())
}

var (
	ErrAddressRequired = response.NewError(http.StatusBadRequest, "Address is required")
	ErrUserNotFound    = response.NewError(http.StatusNotFound, "User not found")
	ErrUsernameTaken   = response.NewError(http.StatusConflict, "Username already exists")
	ErrWalletTaken     = response.NewError(http.StatusConflict, "Wallet address already registered")
	ErrInvalidWallet   = response.NewError(http.StatusBadRequest, "Invalid wallet address")
	ErrOneWallet       = response.NewError(http.StatusBadRequest, "Provide exactly one of ethAddress or solAddress")
	ErrInvalidCategory = response.NewError(http.StatusBadRequest, "Invalid category")
	ErrInvalidGender   = response.NewError(http.StatusBadRequest, "Invalid gender")
	ErrInvalidQuery    = response.NewError(http.StatusBadRequest, "Invalid query parameters")
	ErrInvalidBody     = response.NewError(http.StatusBadRequest, "Invalid request body")
	ErrInvalidID       = response.NewError(http.StatusBadRequest, "Invalid id")
	ErrForbidden       = response.NewError(http.StatusForbidden, "Forbidden")
	ErrNotPerformer    = response.NewError(http.StatusForbidden, "Only performers can do this")
	ErrCannotStream    = response.NewError(http.StatusForbidden, "Streaming is not enabled for this account")

	ErrUnderage          = response.NewError(http.StatusBadRequest, MsgUnderage)
	ErrUsernameRequired  = response.NewError(http.StatusBadRequest, MsgUsernameRequired)
	ErrStageNameRequired = response.NewError(http.StatusBadRequest, MsgStageNameRequired)

	ErrStreamNotFound = response.NewError(http.StatusNotFound, "Stream not found")
	ErrStreamNotLive  = response.NewError(http.StatusConflict, "Stream is not live")
	ErrTitleRequired  = response.NewError(http.StatusBadRequest, "Title is required")

	ErrInvalidAmount   = response.NewError(http.StatusBadRequest, "Amount must be greater than 0")
	ErrInvalidCurrency = response.NewError(http.StatusBadRequest, "Unsupported currency")
	ErrTxHashRequired  = response.NewError(http.StatusBadRequest, "Transaction hash is required")
	ErrTipRecorded     = response.NewError(http.StatusConflict, "Tip already recorded")
	ErrTooManyRequests = response.NewError(http.StatusTooManyRequests, "Too many requests")

	ErrMessageRequired = response.NewError(http.StatusBadRequest, "Message is required")
	ErrMessageTooLong  = response.NewError(http.StatusBadRequest, "Message must be at most 500 characters")

	ErrFollowSelf = response.NewError(http.StatusBadRequest, "You cannot follow yourself")

	ErrLoginExpired     = response.NewError(http.StatusUnauthorized, "Login request expired")
	ErrSignatureUsed    = response.NewError(http.StatusUnauthorized, "Signature already used")
	ErrInvalidSignature = response.NewError(http.StatusUnauthorized, "Invalid signature")

	ErrMediaRequired    = response.NewError(http.StatusBadRequest, "File is required")
	ErrMediaUnsupported = response.NewError(http.StatusBadRequest, "Unsupported media type")
	ErrMediaTooLarge    = response.NewError(http.StatusRequestEntityTooLarge, "File too large")

	ErrUnavailable = response.NewError(http.StatusServiceUnavailable, "Not available in mock mode")
)
