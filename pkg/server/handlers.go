package server

import (
	"HotCams/handler"
)

type Handlers struct {
	Auth      *handler.Auth
	User      *handler.User
	Performer *handler.Performer
	Analytics *handler.Analytics
	Stream    *handler.Stream
	Tip       *handler.Tip
	Follow    *handler.Follow
}
