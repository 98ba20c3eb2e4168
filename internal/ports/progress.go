package ports

import "github.com/bnema/workshop-sync/internal/domain"

type Progress interface {
	Start(total int)
	Advance(item domain.Item, action domain.Action)
	Finish()
}

type NopProgress struct{}

func (NopProgress) Start(int) {}
func (NopProgress) Advance(domain.Item, domain.Action) {}
func (NopProgress) Finish() {}
