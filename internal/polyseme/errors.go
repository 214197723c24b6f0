package polyseme

import "errors"

// Parser errors are reported as tagged values (spec §7); wrap with
// fmt.Errorf("...: %w", ErrX) and compare with errors.Is, the pattern
// the teacher uses throughout its encoder/decoder packages.
var (
	// ErrBase64Decoding means a TXT string was not valid base-64 where
	// base-64 was required.
	ErrBase64Decoding = errors.New("polyseme: invalid base-64 in record entry")

	// ErrAlreadyReachedEndOfFile is reserved for callers that call Read
	// after a prior Read already signalled end of stream. Read itself
	// never returns this error; it returns (nil, nil) idempotently
	// instead — see the Read doc comment for the rationale (an open
	// question in spec §9).
	ErrAlreadyReachedEndOfFile = errors.New("polyseme: parser already reached end of file")

	// ErrHashVerification means the reconstructed hash of a record did
	// not match its leading Hash entry: the record is corrupt or
	// tampered. Non-recoverable — the counter has already advanced, so
	// the parser must be abandoned.
	ErrHashVerification = errors.New("polyseme: hash verification failed")

	// ErrExpectedHash is reserved for a ContentSet whose first entry is
	// not a parseable hash. Read never returns it: a leading entry that
	// is not valid base-64 is reported as ErrBase64Decoding, and one
	// that decodes to the wrong digest as ErrHashVerification.
	ErrExpectedHash = errors.New("polyseme: expected hash as first entry")

	// ErrEmptyResult means the fetcher returned no strings for a
	// derived label. The caller decides whether to retry (e.g. DNS
	// propagation) or abort; the parser itself never retries.
	ErrEmptyResult = errors.New("polyseme: fetcher returned no records for label")
)
