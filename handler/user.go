package handler

import (
	"HotCams/config"
	"HotCams/pkg/context"
	"HotCams/pkg/response"
	"HotCams/service"
	"HotCams/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxUploadMemory = 32 << 20

type User struct {
	Config       *config.Config
	UserService  service.IUserService
	AuthService  service.IAuthService
	MediaService service.IMediaService
}

func (u *User) RegisterRouter(r gin.IRouter) {
	auth := authorize(u.Config)
	g := r.Group("/user")
	g.GET("", context.Wrap(u.GetByAddress))
	g.POST("", context.Wrap(u.Create))
	g.PUT("/:id", auth, context.Wrap(u.Update))
	g.POST("/media", auth, context.Wrap(u.UploadMedia))
}

// GetByAddress GET /api/user?address=
func (u *User) GetByAddress(c *gin.Context) error {
	resp, err := u.UserService.GetByAddress(c.Request.Context(), c.Query("address"))
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

// Create 创建成功后在 X-Access-Token 头下发 token
func (u *User) Create(c *gin.Context) error {
	var req types.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return types.ErrInvalidBody
	}
	user, err := u.UserService.Create(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	token, err := u.AuthService.IssueToken(user)
	if err != nil {
		return err
	}
	c.Header("X-Access-Token", token)
	response.Created(c, user)
	return nil
}

func (u *User) Update(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "Unauthorized")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if id != uid {
		return types.ErrForbidden
	}
	var req types.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return types.ErrInvalidBody
	}
	user, err := u.UserService.Update(c.Request.Context(), uid, &req)
	if err != nil {
		return err
	}
	response.Success(c, user)
	return nil
}

// UploadMedia multipart 字段 file，kind=photo|video 可省略
func (u *User) UploadMedia(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "Unauthorized")
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxVideoSize+maxUploadMemory)
	fh, err := c.FormFile("file")
	if err != nil {
		return types.ErrMediaRequired
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	resp, err := u.MediaService.Upload(c.Request.Context(), uid, c.PostForm("kind"), fh.Size, f)
	if err != nil {
		return err
	}
	response.Created(c, resp)
	return nil
}
