package classifier

import (
	"fmt"
	"strings"

	"github.com/tair/shop-console/internal/shop/domain"
)

// Keyword tables. Matching is substring-based and case-insensitive.
var (
	ComplaintKeywords = []string{"늦게", "안와요", "환불", "엉망", "짜증", "late", "not arriving", "refund", "terrible", "angry"}
	ShippingKeywords  = []string{"배송", "언제", "shipping", "when"}
	StockKeywords     = []string{"재고", "있나요", "stock", "available"}
)

// Canned annotations and replies.
const (
	complaintAnalysis    = "🚨 불만/항의성 메시지로 감지됨. 자동 응답을 차단했습니다."
	shippingAnalysis     = "📦 배송 문의 감지. 주문 데이터(ID/Name Matching)를 조회하여 자동 응답했습니다."
	stockUnknownAnalysis = "👗 재고 문의 감지. 정확한 상품명을 찾지 못해 전체 안내를 전송했습니다."
	fallbackAnalysis     = "💬 일반 문의 감지. 기본 인사말을 전송했습니다."

	processingReply   = "현재 주문 확인 중이며, 곧 발송 예정입니다. 조금만 기다려주세요!"
	stockUnknownReply = "문의주신 상품의 정확한 제품명을 알려주시면 재고를 확인해 드리겠습니다!"
	GreetingReply     = "안녕하세요, 들꽃이야기입니다. 문의 남겨주셔서 감사합니다. 곧 확인 후 답변 드리겠습니다!"
)

// Rule is one entry of the ordered rule table. Apply reports false when the rule does not match
// and evaluation should move on to the next rule.
type Rule struct {
	Name  string
	Apply func(in Input) (Classification, bool)
}

// Rules is the rule table in priority order; the first matching rule wins.
var Rules = []Rule{
	{Name: "complaint", Apply: complaintRule},
	{Name: "shipping-status", Apply: shippingRule},
	{Name: "stock-inquiry", Apply: stockRule},
	{Name: "fallback", Apply: fallbackRule},
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func complaintRule(in Input) (Classification, bool) {
	if !containsAny(in.Text, ComplaintKeywords) {
		return Classification{}, false
	}
	return Classification{
		IsComplaint: true,
		Status:      ManualRequired,
		Analysis:    complaintAnalysis,
	}, true
}

func shippingRule(in Input) (Classification, bool) {
	if !containsAny(in.Text, ShippingKeywords) {
		return Classification{}, false
	}
	order, ok := FindOrderBySender(in.Orders, in.Sender)
	if !ok {
		return Classification{}, false
	}

	reply := processingReply
	if order.Status == domain.StatusShipped {
		reply = fmt.Sprintf("고객님의 주문 상품은 %s에 발송되었습니다. 운송장 번호는 %s입니다.",
			order.ShippingDate, order.TrackingNumber)
	}
	return autoReplied(shippingAnalysis, reply), true
}

func stockRule(in Input) (Classification, bool) {
	if !containsAny(in.Text, StockKeywords) {
		return Classification{}, false
	}
	rec, ok := FindMentionedProduct(in.Inventory, in.Text)
	if !ok {
		return autoReplied(stockUnknownAnalysis, stockUnknownReply), true
	}

	var reply string
	if rec.InStock() {
		reply = fmt.Sprintf("네! '%s' 제품은 현재 %d개 남아있어 바로 주문 가능합니다.", rec.ProductName, rec.Stock)
	} else {
		reply = fmt.Sprintf("죄송합니다. '%s' 제품은 현재 품절입니다.", rec.ProductName)
		if rec.RestockDate != "" {
			reply += fmt.Sprintf(" %s에 재입고 예정입니다.", rec.RestockDate)
		}
	}
	analysis := fmt.Sprintf("👗 재고 문의 감지. '%s' 재고(%d개)를 확인하여 자동 응답했습니다.", rec.ProductName, rec.Stock)
	return autoReplied(analysis, reply), true
}

func fallbackRule(Input) (Classification, bool) {
	return autoReplied(fallbackAnalysis, GreetingReply), true
}

func autoReplied(analysis, reply string) Classification {
	return Classification{
		IsComplaint:    false,
		Status:         AutoReplied,
		Analysis:       analysis,
		SuggestedReply: reply,
	}
}

// FindOrderBySender returns the first order (newest first) whose customer name, or contact info
// without a leading "@", equals sender.
func FindOrderBySender(orders []domain.Order, sender string) (domain.Order, bool) {
	if sender == "" {
		return domain.Order{}, false
	}
	for _, o := range orders {
		if o.CustomerName == sender {
			return o, true
		}
		if o.ContactInfo != "" && strings.TrimPrefix(o.ContactInfo, "@") == sender {
			return o, true
		}
	}
	return domain.Order{}, false
}

// FindMentionedProduct looks for a record whose full product name appears in text, and failing
// that one whose first word does. Names match case-insensitively, like the keywords.
func FindMentionedProduct(inventory []domain.InventoryRecord, text string) (domain.InventoryRecord, bool) {
	text = strings.ToLower(text)
	for _, rec := range inventory {
		if rec.ProductName != "" && strings.Contains(text, strings.ToLower(rec.ProductName)) {
			return rec, true
		}
	}
	for _, rec := range inventory {
		words := strings.Fields(strings.ToLower(rec.ProductName))
		if len(words) > 0 && strings.Contains(text, words[0]) {
			return rec, true
		}
	}
	return domain.InventoryRecord{}, false
}
