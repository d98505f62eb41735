package quote

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/matzehuels/influencegraph/pkg/errors"
)

// Error messages of the stock-price lookup.
const (
	MsgCompanyRequired = "회사명을 입력해주세요."
	MsgInvalidCompany  = "회사명이 올바르지 않습니다."
	MsgNotFound        = "데이터를 찾지 못했습니다."
)

// Response is the stock-price lookup result served by the preview server.
// On failure only Success and Error are set.
type Response struct {
	Success       bool   `json:"success"`
	Price         string `json:"price,omitempty"`
	Change        string `json:"change,omitempty"`
	ChangePercent string `json:"change_percent,omitempty"`
	Direction     string `json:"direction,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Respond looks up company in b and builds the lookup response. The change
// is reported unsigned; Direction carries the sign.
func Respond(b *Book, company string) Response {
	if strings.TrimSpace(company) == "" {
		return Response{Error: MsgCompanyRequired}
	}
	if errors.ValidateName(company) != nil {
		return Response{Error: MsgInvalidCompany}
	}
	q, ok := b.Lookup(company)
	if !ok {
		return Response{Error: MsgNotFound}
	}
	return Response{
		Success:       true,
		Price:         humanize.Commaf(q.Price),
		Change:        humanize.Commaf(math.Abs(q.Change)),
		ChangePercent: FormatPercent(q.ChangePercent),
		Direction:     q.Direction(),
	}
}
