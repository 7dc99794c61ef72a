package razorpay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestVerifySignature(t *testing.T) {
	const secret = "test_secret"
	sig := SignPayload(secret, "order_abc", "pay_xyz")

	if err := VerifySignature(secret, "order_abc", "pay_xyz", sig); err != nil {
		t.Fatalf("expected signature to verify, got %v", err)
	}
	if err := VerifySignature(secret, "order_abc", "pay_xyz", "deadbeef"); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
	// 签名按字节精确比较，大小写或空白差异都不接受
	if err := VerifySignature(secret, "order_abc", "pay_xyz", strings.ToUpper(sig)); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid for uppercase signature, got %v", err)
	}
	if err := VerifySignature(secret, "order_abc", "pay_xyz", " "+sig); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid for padded signature, got %v", err)
	}
	if err := VerifySignature(secret, "order_other", "pay_xyz", sig); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid for wrong order id, got %v", err)
	}
	if err := VerifySignature("", "order_abc", "pay_xyz", sig); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid for empty secret, got %v", err)
	}
}

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != ordersPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key_id" || pass != "key_secret" {
			t.Errorf("unexpected basic auth %s:%s", user, pass)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body failed: %v", err)
		}
		if body["currency"] != "INR" {
			t.Errorf("unexpected currency %v", body["currency"])
		}
		notes, ok := body["notes"].(map[string]interface{})
		if !ok {
			t.Errorf("expected notes in request body, got %v", body["notes"])
		} else {
			if notes["user_id"] != "42" {
				t.Errorf("unexpected notes.user_id %v", notes["user_id"])
			}
			if notes["coupon_code"] != "WELCOME10" {
				t.Errorf("unexpected notes.coupon_code %v", notes["coupon_code"])
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_test_1",
			"amount":   body["amount"],
			"currency": body["currency"],
			"receipt":  body["receipt"],
			"status":   "created",
		})
	}))
	defer server.Close()

	cfg := &Config{
		KeyID:     "key_id",
		KeySecret: "key_secret",
		Currency:  "INR",
		Endpoint:  server.URL,
	}
	order, err := CreateOrder(context.Background(), cfg, CreateOrderInput{
		AmountMinor: 54000,
		Receipt:     "BC20260828120000000001",
		Notes: map[string]string{
			"user_id":     "42",
			"coupon_code": "WELCOME10",
		},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.OrderID != "order_test_1" {
		t.Fatalf("unexpected order id %s", order.OrderID)
	}
	if order.AmountMinor != 54000 {
		t.Fatalf("unexpected amount %d", order.AmountMinor)
	}
}

func TestCreateOrderGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount exceeds maximum"}}`))
	}))
	defer server.Close()

	cfg := &Config{KeyID: "key_id", KeySecret: "key_secret", Endpoint: server.URL}
	if _, err := CreateOrder(context.Background(), cfg, CreateOrderInput{AmountMinor: 1}); !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
}

func TestCreateOrderConfigInvalid(t *testing.T) {
	if _, err := CreateOrder(context.Background(), &Config{}, CreateOrderInput{AmountMinor: 1}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}
