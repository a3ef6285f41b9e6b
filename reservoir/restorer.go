package reservoir

import (
	"fmt"

	"github.com/prometheus/common/log"

	"github.com/bitmark-inc/obligationd/obligationrecord"
)

// Restorer - interface to restore a transition from the cache file
type Restorer interface {
	Restore() error
}

// NewRestorer - create object with Restorer interface
func NewRestorer(t interface{}) (Restorer, error) {
	switch t.(type) {
	case *obligationrecord.ObligationIssue,
		*obligationrecord.ObligationSettle,
		*obligationrecord.ObligationTransfer:
		return &transitionRestoreData{
			transition: t.(obligationrecord.Transition),
		}, nil
	default:
		return nil, fmt.Errorf("unhandled restore type: %T", t)
	}
}

type transitionRestoreData struct {
	transition obligationrecord.Transition
}

func (t *transitionRestoreData) Restore() error {
	_, _, err := StoreTransition(t.transition)
	if nil != err {
		msg := fmt.Errorf("fail to restore transition: %s", err)
		log.Errorf("%s", msg)
		return msg
	}
	return nil
}

func (t *transitionRestoreData) String() string {
	return fmt.Sprintf("%v", t.transition)
}
