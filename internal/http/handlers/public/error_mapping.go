package public

import (
	"errors"

	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var orderCouponErrorRules = []mappedHandlerError{
	{target: service.ErrCouponNotFound, code: response.CodeBadRequest, msg: "coupon not found"},
	{target: service.ErrCouponInactive, code: response.CodeBadRequest, msg: "coupon inactive"},
	{target: service.ErrCouponMinOrderValue, code: response.CodeBadRequest, msg: "order below coupon minimum"},
	{target: service.ErrCouponInvalid, code: response.CodeBadRequest, msg: "coupon invalid"},
}

var orderLineErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidOrderItem, code: response.CodeBadRequest, msg: "order item invalid"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrProductUnavailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrPackageInvalid, code: response.CodeBadRequest, msg: "package selection invalid"},
}

var orderCreateExtraErrorRules = []mappedHandlerError{
	{target: service.ErrAddressNotFound, code: response.CodeNotFound, msg: "address not found"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "order items empty"},
}

var paymentVerifyErrorRules = []mappedHandlerError{
	{target: service.ErrPaymentSignatureMismatch, code: response.CodeBadRequest, msg: "payment signature mismatch"},
	{target: service.ErrPaymentAlreadyPaid, code: response.CodeConflict, msg: "order already paid"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrPaymentGateway, code: response.CodeBadGateway, msg: "payment gateway error"},
}

var reviewCreateErrorRules = []mappedHandlerError{
	{target: service.ErrReviewRatingInvalid, code: response.CodeBadRequest, msg: "rating out of range"},
	{target: service.ErrReviewMessageTooShort, code: response.CodeBadRequest, msg: "review message too short"},
	{target: service.ErrReviewOrderInvalid, code: response.CodeBadRequest, msg: "no delivered order for product"},
	{target: service.ErrReviewExists, code: response.CodeConflict, msg: "product already reviewed"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
}

func respondOrderCreateError(c *gin.Context, err error) {
	rules := concatMappedHandlerErrors(orderCreateExtraErrorRules, orderLineErrorRules, orderCouponErrorRules)
	respondWithMappedError(c, err, rules, response.CodeInternal, "order create failed")
}

func respondCouponPreviewError(c *gin.Context, err error) {
	rules := concatMappedHandlerErrors(orderLineErrorRules, orderCouponErrorRules)
	respondWithMappedError(c, err, rules, response.CodeInternal, "coupon preview failed")
}

func respondPaymentVerifyError(c *gin.Context, err error) {
	respondWithMappedError(c, err, paymentVerifyErrorRules, response.CodeInternal, "payment verify failed")
}

func respondReviewCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, reviewCreateErrorRules, response.CodeInternal, "review create failed")
}
