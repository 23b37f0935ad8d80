package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/sony/gobreaker/v2"
	"github.com/tidwall/gjson"
)

type Status int

const (
	StatusPending Status = iota
	StatusConfirmed
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusConfirmed:
		return "confirmed"
	case StatusFailed:
		return "failed"
	}
	return "pending"
}

var ErrTxFailed = errors.New("transaction failed on chain")

// Confirmer 查询一次交易的确认状态
type Confirmer interface {
	Check(ctx context.Context, txHash string) (Status, error)
}

// Wait 轮询直到确认、失败或 ctx 结束
func Wait(ctx context.Context, c Confirmer, txHash string, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		status, err := c.Check(ctx, txHash)
		if err == nil {
			switch status {
			case StatusConfirmed:
				return nil
			case StatusFailed:
				return ErrTxFailed
			}
		}
		select {
		case <-ctx.Done():
			if err != nil {
				return fmt.Errorf("%w (last error: %v)", ctx.Err(), err)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// EVMBackend ethclient.Client 的子集
type EVMBackend interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

type EVMConfirmer struct {
	Backend       EVMBackend
	Confirmations uint64
}

func DialEVM(ctx context.Context, url string, confirmations uint64) (*EVMConfirmer, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return &EVMConfirmer{Backend: client, Confirmations: confirmations}, nil
}

// Check 回执成功且区块深度达到阈值才算确认
func (e *EVMConfirmer) Check(ctx context.Context, txHash string) (Status, error) {
	receipt, err := e.Backend.TransactionReceipt(ctx, common.HexToHash(txHash))
	if errors.Is(err, ethereum.NotFound) {
		return StatusPending, nil
	}
	if err != nil {
		return StatusPending, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return StatusFailed, nil
	}
	if e.Confirmations <= 1 || receipt.BlockNumber == nil {
		return StatusConfirmed, nil
	}
	head, err := e.Backend.BlockNumber(ctx)
	if err != nil {
		return StatusPending, err
	}
	depth := new(big.Int).Sub(new(big.Int).SetUint64(head), receipt.BlockNumber)
	if depth.Sign() >= 0 && depth.Uint64()+1 >= e.Confirmations {
		return StatusConfirmed, nil
	}
	return StatusPending, nil
}

// SolanaRPC rpc.Client 的子集，Solana 节点同样是 JSON-RPC 2.0
type SolanaRPC interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

type SolanaConfirmer struct {
	Client     SolanaRPC
	Commitment string
}

func DialSolana(ctx context.Context, url, commitment string) (*SolanaConfirmer, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return &SolanaConfirmer{Client: client, Commitment: commitment}, nil
}

var commitmentRank = map[string]int{
	"processed": 1,
	"confirmed": 2,
	"finalized": 3,
}

// Check getSignatureStatuses 返回的 confirmationStatus 不低于阈值即确认
func (s *SolanaConfirmer) Check(ctx context.Context, signature string) (Status, error) {
	var raw json.RawMessage
	err := s.Client.CallContext(ctx, &raw, "getSignatureStatuses",
		[]string{signature},
		map[string]bool{"searchTransactionHistory": true},
	)
	if err != nil {
		return StatusPending, err
	}

	status := gjson.GetBytes(raw, "value.0")
	if !status.Exists() || status.Type == gjson.Null {
		return StatusPending, nil
	}
	if e := status.Get("err"); e.Exists() && e.Type != gjson.Null {
		return StatusFailed, nil
	}
	want := commitmentRank[s.Commitment]
	if want == 0 {
		want = commitmentRank["confirmed"]
	}
	if commitmentRank[status.Get("confirmationStatus").String()] >= want {
		return StatusConfirmed, nil
	}
	return StatusPending, nil
}

// BreakerConfirmer 节点连续出错时熔断，避免轮询打满故障节点
type BreakerConfirmer struct {
	next Confirmer
	cb   *gobreaker.CircuitBreaker[Status]
}

func WithBreaker(name string, next Confirmer, failures uint32, cooldown time.Duration) *BreakerConfirmer {
	return &BreakerConfirmer{
		next: next,
		cb: gobreaker.NewCircuitBreaker[Status](gobreaker.Settings{
			Name:    name,
			Timeout: cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
		}),
	}
}

func (b *BreakerConfirmer) Check(ctx context.Context, txHash string) (Status, error) {
	return b.cb.Execute(func() (Status, error) {
		return b.next.Check(ctx, txHash)
	})
}

func (b *BreakerConfirmer) State() gobreaker.State {
	return b.cb.State()
}
