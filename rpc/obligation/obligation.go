// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package obligation

import (
	"bytes"
	"encoding/hex"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/coordinator"
	"github.com/bitmark-inc/obligationd/currency"
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/mode"
	"github.com/bitmark-inc/obligationd/obligationrecord"
	"github.com/bitmark-inc/obligationd/ownership"
	"github.com/bitmark-inc/obligationd/reservoir"
	"github.com/bitmark-inc/obligationd/rpc/ratelimit"
)

const (
	rateLimitObligation = 200
	rateBurstObligation = 100
)

// Pool - read access to one of the ledger storage pools
type Pool interface {
	Get(key []byte) []byte
}

// Obligation - type for the RPC
type Obligation struct {
	Log             *logger.L
	Limiter         *rate.Limiter
	IsNormalMode    func(mode.Mode) bool
	IsTestingChain  func() bool
	Coord           coordinator.Coordinator
	Rsvr            reservoir.Reservoir
	Own             ownership.Ownership
	PoolTransitions Pool
	PoolStates      Pool
	PoolHeads       Pool
}

func New(log *logger.L,
	isNormalMode func(mode.Mode) bool,
	isTestingChain func() bool,
	coord coordinator.Coordinator,
	rsvr reservoir.Reservoir,
	own ownership.Ownership,
	poolTransitions Pool,
	poolStates Pool,
	poolHeads Pool,
) *Obligation {
	return &Obligation{
		Log:             log,
		Limiter:         rate.NewLimiter(rateLimitObligation, rateBurstObligation),
		IsNormalMode:    isNormalMode,
		IsTestingChain:  isTestingChain,
		Coord:           coord,
		Rsvr:            rsvr,
		Own:             own,
		PoolTransitions: poolTransitions,
		PoolStates:      poolStates,
		PoolHeads:       poolHeads,
	}
}

// Issue - create a new obligation record
// --------------------------------------

// IssueArguments - arguments for issue RPC
type IssueArguments struct {
	Currency currency.Currency `json:"currency"`      // utf-8
	Amount   uint64            `json:"amount,string"` // smallest currency unit
	Lender   *account.Account  `json:"lender"`        // base58
	Borrower *account.Account  `json:"borrower"`      // base58
	Nonce    uint64            `json:"nonce,string"`
}

// TransitionReply - result from issue, settle and transfer RPC
type TransitionReply struct {
	TxId         digest.Digest                `json:"txId"`
	Confirmation string                       `json:"confirmation"` // hex
	Obligation   *obligationrecord.Obligation `json:"obligation"`
}

// Issue - propose a new obligation and drive it to confirmation
func (obligation *Obligation) Issue(arguments *IssueArguments, reply *TransitionReply) error {

	if err := ratelimit.Limit(obligation.Limiter); nil != err {
		return err
	}

	log := obligation.Log
	log.Infof("Obligation.Issue: %+v", arguments)

	if nil == arguments || nil == arguments.Lender || nil == arguments.Borrower {
		return fault.InvalidItem
	}

	if !obligation.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringResynchronise
	}

	if arguments.Lender.IsTesting() != obligation.IsTestingChain() {
		return fault.WrongNetworkForPublicKey
	}

	if arguments.Borrower.IsTesting() != obligation.IsTestingChain() {
		return fault.WrongNetworkForPublicKey
	}

	outcome, err := obligation.Coord.Issue(arguments.Currency, arguments.Amount, arguments.Lender, arguments.Borrower, arguments.Nonce)
	if nil != err {
		return err
	}

	log.Debugf("id: %v", outcome.TxId)
	reply.TxId = outcome.TxId
	reply.Confirmation = hex.EncodeToString(outcome.Confirmation)
	reply.Obligation = outcome.Obligation

	return nil
}

// Settle - record a payment against an obligation
// -----------------------------------------------

// SettleArguments - arguments for settle RPC
type SettleArguments struct {
	RecordId digest.Digest `json:"recordId"`
	Payment  uint64        `json:"payment,string"` // smallest currency unit
}

// Settle - propose a payment transition and drive it to confirmation
func (obligation *Obligation) Settle(arguments *SettleArguments, reply *TransitionReply) error {

	if err := ratelimit.Limit(obligation.Limiter); nil != err {
		return err
	}

	log := obligation.Log
	log.Infof("Obligation.Settle: %+v", arguments)

	if nil == arguments {
		return fault.InvalidItem
	}

	if !obligation.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringResynchronise
	}

	outcome, err := obligation.Coord.Settle(arguments.RecordId, arguments.Payment)
	if nil != err {
		return err
	}

	log.Debugf("id: %v", outcome.TxId)
	reply.TxId = outcome.TxId
	reply.Confirmation = hex.EncodeToString(outcome.Confirmation)
	reply.Obligation = outcome.Obligation

	return nil
}

// Transfer - reassign the lender of an obligation
// -----------------------------------------------

// TransferArguments - arguments for transfer RPC
type TransferArguments struct {
	RecordId  digest.Digest    `json:"recordId"`
	NewLender *account.Account `json:"newLender"` // base58
}

// Transfer - propose a lender change and drive it to confirmation
func (obligation *Obligation) Transfer(arguments *TransferArguments, reply *TransitionReply) error {

	if err := ratelimit.Limit(obligation.Limiter); nil != err {
		return err
	}

	log := obligation.Log
	log.Infof("Obligation.Transfer: %+v", arguments)

	if nil == arguments || nil == arguments.NewLender {
		return fault.InvalidItem
	}

	if !obligation.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringResynchronise
	}

	if arguments.NewLender.IsTesting() != obligation.IsTestingChain() {
		return fault.WrongNetworkForPublicKey
	}

	outcome, err := obligation.Coord.Transfer(arguments.RecordId, arguments.NewLender)
	if nil != err {
		return err
	}

	log.Debugf("id: %v", outcome.TxId)
	reply.TxId = outcome.TxId
	reply.Confirmation = hex.EncodeToString(outcome.Confirmation)
	reply.Obligation = outcome.Obligation

	return nil
}

// Query the status of a transition
// --------------------------------

// StatusArguments - arguments for status RPC request
type StatusArguments struct {
	TxId digest.Digest `json:"txId"`
}

// StatusReply - results from status RPC
type StatusReply struct {
	Status string `json:"status"`
}

// Status - query transition status
func (obligation *Obligation) Status(arguments *StatusArguments, reply *StatusReply) error {

	if err := ratelimit.Limit(obligation.Limiter); nil != err {
		return err
	}

	reply.Status = obligation.Rsvr.TransitionStatus(arguments.TxId).String()
	return nil
}

// Trace the history of a record
// -----------------------------

const (
	maximumProvenanceCount = 100
)

// ProvenanceArguments - arguments for provenance RPC
type ProvenanceArguments struct {
	TxId  digest.Digest `json:"txId"`
	Count int           `json:"count"`
}

// ProvenanceRecord - either a transition or the current state
type ProvenanceRecord struct {
	Record    string      `json:"record"`
	IsCurrent bool        `json:"isCurrent"`
	TxId      interface{} `json:"txId,omitempty"`
	RecordId  interface{} `json:"recordId,omitempty"`
	Data      interface{} `json:"data"`
}

// ProvenanceReply - results from provenance RPC
type ProvenanceReply struct {
	Data []ProvenanceRecord `json:"data"`
}

// Provenance - list the transition history backwards from a transition id
func (obligation *Obligation) Provenance(arguments *ProvenanceArguments, reply *ProvenanceReply) error {

	if err := ratelimit.LimitN(obligation.Limiter, arguments.Count, maximumProvenanceCount); nil != err {
		return err
	}

	log := obligation.Log

	log.Infof("Obligation.Provenance: %+v", arguments)

	count := arguments.Count
	id := arguments.TxId

	provenance := make([]ProvenanceRecord, 0, count)

loop:
	for i := 0; i < count; i += 1 {

		packed := obligation.PoolTransitions.Get(id[:])
		if nil == packed {
			break loop
		}

		transition, _, err := obligationrecord.Packed(packed).Unpack(mode.IsTesting())
		if nil != err {
			break loop
		}

		record, _ := obligationrecord.RecordName(transition)
		h := ProvenanceRecord{
			Record:    record,
			IsCurrent: false,
			TxId:      id,
			RecordId:  nil,
			Data:      transition,
		}
		if i == 0 {
			h.IsCurrent = obligation.isCurrentHead(id)
		}

		switch transition.(type) {

		case *obligationrecord.ObligationIssue:
			// the issue transition id doubles as the record id
			h.RecordId = id
			provenance = append(provenance, h)

			head := obligation.PoolHeads.Get(id[:])
			if nil == head {
				break loop
			}
			packedState := obligation.PoolStates.Get(head)
			if nil == packedState {
				break loop
			}
			state, err := obligationrecord.PackedObligation(packedState).Unpack(mode.IsTesting())
			if nil != err {
				break loop
			}

			h = ProvenanceRecord{
				Record:   "Obligation",
				RecordId: id,
				Data:     state,
			}
			provenance = append(provenance, h)
			break loop

		case *obligationrecord.ObligationSettle, *obligationrecord.ObligationTransfer:
			linked := transition.(obligationrecord.LinkedTransition)
			provenance = append(provenance, h)
			id = linked.GetLink()

		default:
			break loop
		}
	}

	reply.Data = provenance

	return nil
}

// a transition is current when the head pointer of its record still
// names it
func (obligation *Obligation) isCurrentHead(txId digest.Digest) bool {
	packedState := obligation.PoolStates.Get(txId[:])
	if nil == packedState {
		return false
	}
	state, err := obligationrecord.PackedObligation(packedState).Unpack(mode.IsTesting())
	if nil != err {
		return false
	}
	head := obligation.PoolHeads.Get(state.Id[:])
	if nil == head {
		return false
	}
	return bytes.Equal(head, txId[:])
}

// List the records an account participates in
// -------------------------------------------

const (
	MaximumListCount = 100
)

// ListArguments - arguments for RPC
type ListArguments struct {
	Owner *account.Account `json:"owner"`        // base58
	Start uint64           `json:"start,string"` // first record number
	Count int              `json:"count"`        // number of records
}

// ListReply - result of list RPC
type ListReply struct {
	Next uint64                `json:"next,string"` // Start value for the next call
	Data []ownership.Record    `json:"data"`        // list of transitions
	Tx   map[string]ListRecord `json:"tx"`          // table of transition records
}

// ListRecord - expanded transition for the tx table
type ListRecord struct {
	Record string      `json:"record"`
	TxId   interface{} `json:"txId,omitempty"`
	Data   interface{} `json:"data"`
}

// List - list the obligations an account holds
func (obligation *Obligation) List(arguments *ListArguments, reply *ListReply) error {

	if err := ratelimit.LimitN(obligation.Limiter, arguments.Count, MaximumListCount); nil != err {
		return err
	}

	log := obligation.Log
	log.Infof("Obligation.List: %+v", arguments)

	if nil == arguments || nil == arguments.Owner {
		return fault.InvalidItem
	}

	ownershipData, err := obligation.Own.ListRecordsFor(arguments.Owner, arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	log.Debugf("ownership: %+v", ownershipData)

	// extract unique transition ids
	//   for an issue the TransitionId == RecordId
	txIds := make(map[digest.Digest]struct{})
	current := uint64(0)
	for _, r := range ownershipData {
		txIds[r.TransitionId] = struct{}{}
		txIds[r.RecordId] = struct{}{}
		current = r.N
	}

	records := make(map[string]ListRecord)

	for txId := range txIds {

		log.Debugf("txId: %v", txId)

		packed := obligation.PoolTransitions.Get(txId[:])
		if nil == packed {
			return fault.TransitionNotFound
		}

		transition, _, err := obligationrecord.Packed(packed).Unpack(mode.IsTesting())
		if nil != err {
			return err
		}

		record, ok := obligationrecord.RecordName(transition)
		if !ok {
			log.Errorf("problem tx: %+v", transition)
			return fault.TransitionNotFound
		}
		textTxId, err := txId.MarshalText()
		if nil != err {
			return err
		}

		records[string(textTxId)] = ListRecord{
			Record: record,
			TxId:   txId,
			Data:   transition,
		}
	}

	reply.Data = ownershipData
	reply.Tx = records

	// if no record was found then just return Next as zero
	// otherwise the next possible number
	if 0 == current {
		reply.Next = 0
	} else {
		reply.Next = current + 1
	}
	return nil
}
