package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultEndpoint  = "https://api.razorpay.com"
	defaultTimeoutMS = 10000
	ordersPath       = "/v1/orders"
)

var (
	ErrConfigInvalid    = errors.New("razorpay config invalid")
	ErrRequestFailed    = errors.New("razorpay request failed")
	ErrResponseInvalid  = errors.New("razorpay response invalid")
	ErrSignatureInvalid = errors.New("razorpay signature invalid")
)

// Config 网关配置
type Config struct {
	KeyID     string `json:"key_id"`     // API Key ID
	KeySecret string `json:"key_secret"` // 签名密钥
	Currency  string `json:"currency"`   // 结算币种
	Endpoint  string `json:"endpoint"`   // API 地址，留空使用官方地址
	TimeoutMS int    `json:"timeout_ms"` // 请求超时（毫秒）
}

// CreateOrderInput 网关下单输入，金额为最小货币单位
type CreateOrderInput struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	Notes       map[string]string // 随单透传的业务标记（买家ID、优惠码等）
}

// GatewayOrder 网关订单
type GatewayOrder struct {
	OrderID     string
	AmountMinor int64
	Currency    string
	Receipt     string
	Status      string
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// ValidateConfig 校验网关配置完整性
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.KeyID) == "" {
		return fmt.Errorf("%w: key_id is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.KeySecret) == "" {
		return fmt.Errorf("%w: key_secret is required", ErrConfigInvalid)
	}
	return nil
}

// CreateOrder 调网关创建支付订单
func CreateOrder(ctx context.Context, cfg *Config, input CreateOrderInput) (*GatewayOrder, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if input.AmountMinor <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrRequestFailed)
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = strings.ToUpper(strings.TrimSpace(cfg.Currency))
	}
	if currency == "" {
		currency = "INR"
	}

	fields := map[string]interface{}{
		"amount":   input.AmountMinor,
		"currency": currency,
		"receipt":  input.Receipt,
	}
	if len(input.Notes) > 0 {
		fields["notes"] = input.Notes
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal payload failed", ErrRequestFailed)
	}

	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+ordersPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(cfg.KeyID, cfg.KeySecret)

	timeout := cfg.TimeoutMS
	if timeout <= 0 {
		timeout = defaultTimeoutMS
	}
	client := &http.Client{Timeout: time.Duration(timeout) * time.Millisecond}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body failed", ErrResponseInvalid)
	}
	if resp.StatusCode != http.StatusOK {
		var gatewayErr errorResponse
		if err := json.Unmarshal(body, &gatewayErr); err == nil && gatewayErr.Error.Description != "" {
			return nil, fmt.Errorf("%w: %s (%s)", ErrRequestFailed, gatewayErr.Error.Description, gatewayErr.Error.Code)
		}
		return nil, fmt.Errorf("%w: http status %d", ErrRequestFailed, resp.StatusCode)
	}

	var parsed orderResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: unmarshal body failed", ErrResponseInvalid)
	}
	if parsed.ID == "" {
		return nil, fmt.Errorf("%w: missing order id", ErrResponseInvalid)
	}

	return &GatewayOrder{
		OrderID:     parsed.ID,
		AmountMinor: parsed.Amount,
		Currency:    parsed.Currency,
		Receipt:     parsed.Receipt,
		Status:      parsed.Status,
	}, nil
}

// VerifySignature 校验支付回传签名。
// 签名为 HMAC-SHA256(order_id + "|" + payment_id) 的十六进制小写。
func VerifySignature(keySecret, gatewayOrderID, gatewayPaymentID, signature string) error {
	if keySecret == "" || gatewayOrderID == "" || gatewayPaymentID == "" || signature == "" {
		return ErrSignatureInvalid
	}
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureInvalid
	}
	return nil
}

// SignPayload 生成回传签名，供测试与本地联调使用
func SignPayload(keySecret, gatewayOrderID, gatewayPaymentID string) string {
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
