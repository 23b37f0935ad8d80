// Package session 客户端钱包会话：连接钱包后查询资料，未注册进入建档，已注册进入 Ready
package session

import (
	"HotCams/models"
)

type Status int

const (
	Disconnected Status = iota
	Checking
	NeedsProfile
	Ready
)

func (s Status) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Checking:
		return "checking"
	case NeedsProfile:
		return "needs_profile"
	case Ready:
		return "ready"
	}
	return "unknown"
}

// State 会话快照；Generation 每次发起查询加一，用来丢弃过期的查询结果
type State struct {
	Status     Status
	Address    string
	User       *models.Users
	Err        error
	Generation uint64
}

type Action interface {
	action()
}

type (
	// WalletConnected 连接或切换钱包，同时发起新一轮查询
	WalletConnected    struct{ Address string }
	WalletDisconnected struct{}
	LookupSucceeded    struct {
		Address    string
		Generation uint64
		User       *models.Users
	}
	LookupNotFound struct {
		Address    string
		Generation uint64
	}
	LookupFailed struct {
		Address    string
		Generation uint64
		Err        error
	}
	ProfileCreated struct {
		Address string
		User    *models.Users
	}
)

func (WalletConnected) action()    {}
func (WalletDisconnected) action() {}
func (LookupSucceeded) action()    {}
func (LookupNotFound) action()     {}
func (LookupFailed) action()       {}
func (ProfileCreated) action()     {}

// current 查询结果是否属于当前这一轮
func (s State) current(address string, gen uint64) bool {
	return s.Status == Checking && s.Address == address && s.Generation == gen
}

// Reduce 纯函数，不认识或已过期的 action 原样返回 s
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case WalletConnected:
		if a.Address == "" {
			return State{Status: Disconnected, Generation: s.Generation + 1}
		}
		return State{Status: Checking, Address: a.Address, Generation: s.Generation + 1}
	case WalletDisconnected:
		return State{Status: Disconnected, Generation: s.Generation + 1}
	case LookupSucceeded:
		if !s.current(a.Address, a.Generation) {
			return s
		}
		return State{Status: Ready, Address: s.Address, User: a.User, Generation: s.Generation}
	case LookupNotFound:
		if !s.current(a.Address, a.Generation) {
			return s
		}
		return State{Status: NeedsProfile, Address: s.Address, Generation: s.Generation}
	case LookupFailed:
		if !s.current(a.Address, a.Generation) {
			return s
		}
		return State{Status: Disconnected, Err: a.Err, Generation: s.Generation}
	case ProfileCreated:
		if s.Address != a.Address || s.Status == Disconnected {
			return s
		}
		return State{Status: Ready, Address: s.Address, User: a.User, Generation: s.Generation}
	}
	return s
}
