// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	// ConflictError - consensus refused a transition because an input
	// record version was already consumed
	ConflictError GenericError

	// ExistsError - something already exists
	ExistsError GenericError

	// InvalidError - something failed a validity check
	InvalidError GenericError

	// LengthError - something had an incorrect length
	LengthError GenericError

	// NotFoundError - something was not found
	NotFoundError GenericError

	// ProcessError - something failed during processing
	ProcessError GenericError

	// RecordError - a record could not be packed or unpacked
	RecordError GenericError

	// RejectedError - a counterparty refused to endorse a transition
	RejectedError GenericError

	// RuleError - a transition failed a specific validity rule
	RuleError GenericError

	// TimeoutError - a network operation exhausted its retries
	TimeoutError GenericError
)

// common errors - keep in alphabetic order
var (
	AlreadyInitialised              = ExistsError("already initialised")
	CannotDecodeAccount             = RecordError("cannot decode account")
	CannotDecodePrivateKey          = RecordError("cannot decode private key")
	CannotDecodeSalt                = RecordError("cannot decode salt")
	CannotDecodeSeed                = RecordError("cannot decode seed")
	CertificateFileExists           = ExistsError("certificate file exists")
	ChecksumMismatch                = ProcessError("checksum mismatch")
	ConfirmationNotVerified         = InvalidError("confirmation not verified")
	CounterpartyTimeout             = TimeoutError("counterparty timeout")
	CryptoFailed                    = ProcessError("crypto failed")
	EndorsementNotVerified          = InvalidError("endorsement not verified")
	EndorsementTooLong              = LengthError("endorsement too long")
	IdentityNameAlreadyExists       = ExistsError("identity name already exists")
	IdentityNameNotFound            = NotFoundError("identity name not found")
	IncompatibleOptions             = InvalidError("incompatible options")
	IncorrectEndorsementCount       = LengthError("incorrect endorsement count")
	IntentNotRecognised             = RuleError("intent not recognised")
	InvalidAmount                   = InvalidError("invalid amount")
	InvalidCount                    = LengthError("invalid count")
	InvalidCurrency                 = InvalidError("invalid currency")
	InvalidCursor                   = InvalidError("invalid cursor")
	InvalidDnsTxtRecord             = InvalidError("invalid dns txt record")
	InvalidFingerprint              = InvalidError("invalid fingerprint")
	InvalidIpAddress                = InvalidError("invalid IP Address")
	InvalidItem                     = InvalidError("invalid item")
	InvalidKeyLength                = LengthError("invalid key length")
	InvalidKeyType                  = InvalidError("invalid key type")
	InvalidNetwork                  = InvalidError("invalid network")
	InvalidNodeDomain               = InvalidError("invalid node domain")
	InvalidNotaryReply              = InvalidError("invalid notary reply")
	InvalidParticipant              = InvalidError("invalid participant")
	InvalidPortNumber               = InvalidError("invalid port number")
	InvalidPrivateKey               = InvalidError("invalid private key")
	InvalidPrivateKeyFile           = InvalidError("invalid private key file")
	InvalidPublicKey                = InvalidError("invalid public key")
	InvalidPublicKeyFile            = InvalidError("invalid public key file")
	InvalidSeedHeader               = InvalidError("invalid seed header")
	InvalidSeedLength               = LengthError("invalid seed length")
	InvalidSignature                = InvalidError("invalid signature")
	InvalidStructure                = InvalidError("invalid structure")
	IssueMustHaveNoInputs           = RuleError("issue must have no inputs")
	KeyFileAlreadyExists            = ExistsError("key file already exists")
	LenderMustChange                = RuleError("lender must change")
	LinkNotCurrentVersion           = InvalidError("link is not the current version")
	MissingParameters               = LengthError("missing parameters")
	NilPointer                      = ProcessError("nil pointer")
	NoConfirmation                  = NotFoundError("no confirmation")
	NotaryTimeout                   = TimeoutError("notary timeout")
	NotAvailableDuringResynchronise = InvalidError("not available during resynchronise")
	NotConnected                    = ProcessError("not connected")
	NotInitialised                  = NotFoundError("not initialised")
	NotLink                         = InvalidError("not link")
	NotObligationPack               = RecordError("not obligation pack")
	NotOwnedItemPack                = RecordError("not owned item pack")
	NotPrivateKey                   = RecordError("not private key")
	NotPublicKey                    = RecordError("not public key")
	ObligationNotFound              = NotFoundError("obligation not found")
	Overpayment                     = InvalidError("overpayment")
	PartyNotFound                   = NotFoundError("party not found")
	PasswordLength                  = InvalidError("password length is invalid")
	RateLimiting                    = ProcessError("rate limiting")
	RecordLocked                    = ExistsError("record locked")
	SameParty                       = InvalidError("same party")
	SignerNotParticipant            = RuleError("signer is not a required participant")
	SignersMismatch                 = RuleError("required signers do not match participants")
	TransactionAlreadyInUse         = ProcessError("transaction already in use")
	TransitionAlreadyExists         = ExistsError("transition already exists")
	TransitionConflict              = ConflictError("transition conflict")
	TransitionMustHaveOneInput      = RuleError("transition must have exactly one input")
	TransitionNotFound              = NotFoundError("transition not found")
	VerifiedPassword                = InvalidError("verified password is different")
	WrongNetworkForPrivateKey       = InvalidError("wrong network for private key")
	WrongNetworkForPublicKey        = InvalidError("wrong network for public key")
	WrongPassword                   = InvalidError("wrong password")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ConflictError) Error() string { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }
func (e RejectedError) Error() string { return string(e) }
func (e RuleError) Error() string     { return string(e) }
func (e TimeoutError) Error() string  { return string(e) }

// determine the class of an error
func IsErrConflict(e error) bool { _, ok := e.(ConflictError); return ok }
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
func IsErrRejected(e error) bool { _, ok := e.(RejectedError); return ok }
func IsErrRule(e error) bool     { _, ok := e.(RuleError); return ok }
func IsErrTimeout(e error) bool  { _, ok := e.(TimeoutError); return ok }
