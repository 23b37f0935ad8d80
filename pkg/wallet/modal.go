// Package wallet 打赏弹窗：选择资产与金额，通过已连接的钱包转账给主播
package wallet

import (
	"HotCams/pkg/apiclient"
	"HotCams/pkg/chain"
	"HotCams/pkg/log"
	"HotCams/types"
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Asset string

const (
	ETH  Asset = "ETH"
	SOL  Asset = "SOL"
	USDC Asset = "USDC"
)

// Presets 快捷金额
var Presets = []string{"0.01", "0.05", "0.1", "0.5"}

const (
	DefaultCloseDelay   = 2 * time.Second
	defaultPollInterval = 2 * time.Second
	defaultConfirmWait  = 2 * time.Minute

	// MsgFailed 展示给用户的统一失败文案，具体原因只写日志
	MsgFailed = "Tip failed. Please try again."
)

var (
	ErrNoWallet         = errors.New("connect a wallet to send tips")
	ErrInvalidRecipient = errors.New("performer has no valid address on this chain")
	ErrBusy             = errors.New("a tip is already being sent")
	ErrUnsupportedAsset = errors.New("unsupported asset")
	ErrNoConfirmer      = errors.New("solana tips need a confirmation source")
)

// Transfer 已换算为最小单位的转账
type Transfer struct {
	Chain    chain.Chain
	Asset    Asset
	From     string
	To       string
	Amount   *big.Int
	Decimals int
}

// Signer 已连接的钱包，提交成功即返回交易哈希
type Signer interface {
	Address() string
	SendTransfer(ctx context.Context, t *Transfer) (string, error)
}

type Wallets struct {
	EVM    Signer
	Solana Signer
}

// AvailableAssets 按已连接的钱包列出可选资产，USDC 两条链都支持
func AvailableAssets(w Wallets) []Asset {
	var out []Asset
	if w.EVM != nil {
		out = append(out, ETH)
	}
	if w.Solana != nil {
		out = append(out, SOL)
	}
	if w.EVM != nil || w.Solana != nil {
		out = append(out, USDC)
	}
	return out
}

// route USDC 优先走 EVM 钱包
func (w Wallets) route(a Asset) (Signer, chain.Chain, error) {
	switch a {
	case ETH:
		return w.EVM, chain.Ethereum, nil
	case SOL:
		return w.Solana, chain.Solana, nil
	case USDC:
		if w.EVM != nil {
			return w.EVM, chain.Ethereum, nil
		}
		return w.Solana, chain.Solana, nil
	}
	return nil, "", ErrUnsupportedAsset
}

type Recipient struct {
	StreamID   uint64
	Name       string
	EthAddress string
	SolAddress string
}

func (r Recipient) address(c chain.Chain) string {
	if c == chain.Ethereum {
		return r.EthAddress
	}
	return r.SolAddress
}

// TipRecorder 成功后把交易上报给服务端，*apiclient.Client 满足
type TipRecorder interface {
	RecordTip(ctx context.Context, req *types.RecordTipRequest) (uint64, error)
}

var _ TipRecorder = (*apiclient.Client)(nil)

type State int

const (
	Idle State = iota
	Sending
	Confirming
	Succeeded
	Failed
	Closed
)

func (s State) String() string {
	return [...]string{"idle", "sending", "confirming", "succeeded", "failed", "closed"}[s]
}

type Options struct {
	// SolanaConfirmer Solana 交易需等到确认后才算成功
	SolanaConfirmer chain.Confirmer
	Recorder        TipRecorder
	CloseDelay      time.Duration
	PollInterval    time.Duration
	ConfirmTimeout  time.Duration
	// OnClose 成功后自动关闭时回调
	OnClose func()
}

type Modal struct {
	wallets   Wallets
	recipient Recipient
	opts      Options

	mu          sync.Mutex
	asset       Asset
	amount      string
	message     string
	state       State
	errMsg      string
	txHash      string
	cancelClose context.CancelFunc
}

func NewModal(wallets Wallets, recipient Recipient, opts Options) *Modal {
	if opts.CloseDelay <= 0 {
		opts.CloseDelay = DefaultCloseDelay
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.ConfirmTimeout <= 0 {
		opts.ConfirmTimeout = defaultConfirmWait
	}
	m := &Modal{wallets: wallets, recipient: recipient, opts: opts, asset: ETH}
	if assets := AvailableAssets(wallets); len(assets) > 0 {
		m.asset = assets[0]
	}
	return m
}

func (m *Modal) SetAsset(a Asset) {
	m.mu.Lock()
	m.asset = a
	m.mu.Unlock()
}

// SetPreset 选中第 i 个快捷金额
func (m *Modal) SetPreset(i int) {
	if i < 0 || i >= len(Presets) {
		return
	}
	m.SetAmount(Presets[i])
}

func (m *Modal) SetAmount(amount string) {
	m.mu.Lock()
	m.amount = strings.TrimSpace(amount)
	m.mu.Unlock()
}

func (m *Modal) SetMessage(msg string) {
	m.mu.Lock()
	m.message = msg
	m.mu.Unlock()
}

func (m *Modal) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Error 失败时的提示文案
func (m *Modal) Error() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errMsg
}

func (m *Modal) TxHash() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.txHash
}

// prepare 构造转账前的全部校验
func (m *Modal) prepare() (Signer, *Transfer, error) {
	signer, c, err := m.wallets.route(m.asset)
	if err != nil {
		return nil, nil, err
	}
	if signer == nil {
		return nil, nil, ErrNoWallet
	}
	// Solana 必须等到确认阈值才算成功
	if c == chain.Solana && m.opts.SolanaConfirmer == nil {
		return nil, nil, ErrNoConfirmer
	}
	to := m.recipient.address(c)
	if to == "" || chain.ValidateAddress(c, to) != nil {
		return nil, nil, ErrInvalidRecipient
	}
	if c == chain.Ethereum {
		to = chain.ChecksumAddress(to)
	}
	decimals := chain.Decimals(string(m.asset))
	amount, err := chain.ParseAmount(m.amount, decimals)
	if err != nil {
		return nil, nil, err
	}
	return signer, &Transfer{
		Chain:    c,
		Asset:    m.asset,
		From:     signer.Address(),
		To:       to,
		Amount:   amount,
		Decimals: decimals,
	}, nil
}

// Send 校验失败直接返回且不改变状态；链上失败进入 Failed，弹窗保持打开可重试
func (m *Modal) Send(ctx context.Context) (string, error) {
	m.mu.Lock()
	if m.state == Sending || m.state == Confirming {
		m.mu.Unlock()
		return "", ErrBusy
	}
	signer, transfer, err := m.prepare()
	if err != nil {
		m.mu.Unlock()
		return "", err
	}
	m.state, m.errMsg = Sending, ""
	message := m.message
	m.mu.Unlock()

	hash, err := signer.SendTransfer(ctx, transfer)
	if err != nil {
		return "", m.fail("submit", err)
	}

	if transfer.Chain == chain.Solana {
		m.setState(Confirming)
		waitCtx, cancel := context.WithTimeout(ctx, m.opts.ConfirmTimeout)
		err := chain.Wait(waitCtx, m.opts.SolanaConfirmer, hash, m.opts.PollInterval)
		cancel()
		if err != nil {
			return "", m.fail("confirm", err)
		}
	}

	m.mu.Lock()
	m.state, m.txHash = Succeeded, hash
	m.mu.Unlock()

	m.record(ctx, transfer, hash, message)
	m.scheduleClose()
	return hash, nil
}

func (m *Modal) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Modal) fail(stage string, err error) error {
	log.L.Warn("tip transfer failed", zap.String("stage", stage), zap.Error(err))
	m.mu.Lock()
	m.state, m.errMsg = Failed, MsgFailed
	m.mu.Unlock()
	return fmt.Errorf("%s: %w", stage, err)
}

// record 上报失败不影响打赏结果
func (m *Modal) record(ctx context.Context, t *Transfer, hash, message string) {
	if m.opts.Recorder == nil || m.recipient.StreamID == 0 {
		return
	}
	amount, _ := strconv.ParseFloat(chain.FormatAmount(t.Amount, t.Decimals), 64)
	_, err := m.opts.Recorder.RecordTip(ctx, &types.RecordTipRequest{
		StreamID: m.recipient.StreamID,
		Amount:   amount,
		Currency: string(t.Asset),
		Chain:    string(t.Chain),
		TxHash:   hash,
		Message:  message,
	})
	if err != nil {
		log.L.Warn("record tip failed", zap.String("tx_hash", hash), zap.Error(err))
	}
}

func (m *Modal) scheduleClose() {
	ctx, cancel := context.WithCancel(context.Background())
	m.mu.Lock()
	if m.cancelClose != nil {
		m.cancelClose()
	}
	m.cancelClose = cancel
	m.mu.Unlock()

	go func() {
		timer := time.NewTimer(m.opts.CloseDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		m.mu.Lock()
		if ctx.Err() != nil || m.state != Succeeded {
			m.mu.Unlock()
			return
		}
		m.reset()
		m.state = Closed
		m.mu.Unlock()
		if m.opts.OnClose != nil {
			m.opts.OnClose()
		}
	}()
}

// Close 手动关闭，同时取消待执行的自动关闭
func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancelClose != nil {
		m.cancelClose()
		m.cancelClose = nil
	}
	m.reset()
	m.state = Closed
}

func (m *Modal) reset() {
	m.amount, m.message, m.errMsg, m.txHash = "", "", "", ""
}
