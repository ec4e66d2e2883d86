package order

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Carrier is a supported Vietnamese shipping provider.
type Carrier string

const (
	CarrierGHN         Carrier = "GHN"
	CarrierGHTK        Carrier = "GHTK"
	CarrierViettelPost Carrier = "ViettelPost"
)

// ShippingLabel tells the vendor how to print the waybill. LabelURL is nil when
// the carrier only serves labels behind its own merchant portal.
type ShippingLabel struct {
	OrderID           uuid.UUID `json:"orderId"`
	ShippingProvider  Carrier   `json:"shippingProvider"`
	ShippingCode      string    `json:"shippingCode"`
	LabelURL          *string   `json:"labelUrl"`
	PrintInstructions string    `json:"printInstructions,omitempty"`
}

// LabelProvider is the per-carrier adapter. To add a carrier, implement it and
// register it in DefaultCarriers.
type LabelProvider interface {
	Label(code string) (labelURL *string, instructions string)
}

// CarrierRegistry maps carrier names to their label adapters.
type CarrierRegistry map[Carrier]LabelProvider

func DefaultCarriers() CarrierRegistry {
	return CarrierRegistry{
		CarrierGHTK:        ghtkLabels{baseURL: "https://services.giaohangtietkiem.vn/services/label/"},
		CarrierGHN:         portalLabels{portal: "GHN", site: "khachhang.ghn.vn", action: "In phiếu gửi"},
		CarrierViettelPost: portalLabels{portal: "Viettel Post", site: "viettelpost.vn", action: "In vận đơn"},
	}
}

// Supported lists registered carriers in a stable order.
func (r CarrierRegistry) Supported() []string {
	names := make([]string, 0, len(r))
	for c := range r {
		names = append(names, string(c))
	}
	sort.Strings(names)
	return names
}

func (r CarrierRegistry) unsupportedMessage(provider string) string {
	return fmt.Sprintf("Đơn vị vận chuyển %q không được hỗ trợ. Hỗ trợ: %s", provider, strings.Join(r.Supported(), ", "))
}

// ── GHTK ──────────────────────────────────────────────────────────────────────
// Labels are public and keyed by tracking code.

type ghtkLabels struct{ baseURL string }

func (g ghtkLabels) Label(code string) (*string, string) {
	u := g.baseURL + code
	return &u, ""
}

// ── GHN / Viettel Post ────────────────────────────────────────────────────────
// Labels require a merchant portal login, so the vendor gets manual steps instead.

type portalLabels struct {
	portal string
	site   string
	action string
}

func (p portalLabels) Label(code string) (*string, string) {
	return nil, fmt.Sprintf("Đăng nhập cổng %s (%s), tìm đơn theo mã vận đơn %s và chọn \"%s\" để in nhãn.",
		p.portal, p.site, code, p.action)
}
