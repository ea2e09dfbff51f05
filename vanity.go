package easybtc

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// MaxVanityWorkers is the largest number of workers a search may use.
	MaxVanityWorkers = 256

	// MaxPrefixLength is the longest prefix that can follow the leading "1"
	// of a P2PKH address.
	MaxPrefixLength = 33

	// MaxDifficultyRatio bounds how far the difficulty of a prefix may exceed
	// the attempt bound of a search before the prefix is rejected up front.
	MaxDifficultyRatio = 1e6

	progressInterval = 1 << 18
	randomBufferSize = 64 * PrivateKeyLength
)

// VanityOptions configures a vanity search.
type VanityOptions struct {
	// Workers is the number of goroutines generating candidates, 1 to MaxVanityWorkers.
	Workers int

	// MaxAttempts bounds the total number of candidates tried by all workers.
	// Zero means no bound.
	MaxAttempts uint64

	// Logger receives search progress. Defaults to the logrus standard logger.
	Logger logrus.FieldLogger

	// Random returns the random source owned by the given worker. The returned
	// reader is used by that worker only. Defaults to a buffered crypto/rand reader.
	Random func(worker int) io.Reader
}

// VanityResult is a private key whose P2PKH address starts with the
// requested prefix.
type VanityResult struct {
	PrivateKey *PrivateKey   `json:"-"`
	WIF        string        `json:"wif"`
	Hex        string        `json:"hex"`
	P2PKH      string        `json:"p2pkh"`
	Tries      uint64        `json:"tries"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Fields returns label/value pairs in display order.
func (r *VanityResult) Fields() [][2]string {
	return [][2]string{
		{"wif", r.WIF},
		{"hex", r.Hex},
		{"p2pkh", r.P2PKH},
		{"tries", strconv.FormatUint(r.Tries, 10)},
		{"time(s)", strconv.FormatFloat(r.Elapsed.Seconds(), 'f', 3, 64)},
	}
}

// MarshalJSON renders Elapsed in seconds, like the "time(s)" field.
func (r *VanityResult) MarshalJSON() ([]byte, error) {
	type result VanityResult
	return json.Marshal(struct {
		*result
		Elapsed float64 `json:"elapsed"`
	}{(*result)(r), r.Elapsed.Seconds()})
}

// ValidatePrefix checks that prefix can appear right after the leading "1"
// of a P2PKH address.
func ValidatePrefix(prefix string) error {
	for i, c := range prefix {
		if !strings.ContainsRune(Base58Alphabet, c) {
			return errors.Wrapf(ErrInvalidPrefix, "character %q at position %d", c, i)
		}
	}
	if len(prefix) > MaxPrefixLength {
		return errors.Wrapf(ErrPrefixTooLong, "%d characters, at most %d allowed",
			len(prefix), MaxPrefixLength)
	}
	return nil
}

// Difficulty returns the expected number of candidates to try before
// finding an address with the given prefix.
func Difficulty(prefix string) float64 {
	return math.Pow(float64(len(Base58Alphabet)), float64(len(prefix)))
}

// Vanity searches for an address starting with "1" + prefix using workers goroutines.
func Vanity(prefix string, workers int) (*VanityResult, error) {
	return SearchVanity(context.Background(), prefix, VanityOptions{Workers: workers})
}

// SearchVanity generates random private keys until one has a P2PKH address
// starting with "1" + prefix. The search stops at the first match, when ctx
// is done, or when opts.MaxAttempts candidates were tried, in which case
// ErrSearchExhausted is returned. A prefix whose difficulty exceeds
// opts.MaxAttempts by more than MaxDifficultyRatio is rejected with
// ErrPrefixTooLong before any candidate is generated. All workers have exited when SearchVanity returns.
func SearchVanity(ctx context.Context, prefix string, opts VanityOptions) (*VanityResult, error) {
	if opts.Workers < 1 || opts.Workers > MaxVanityWorkers {
		return nil, errors.Wrapf(ErrInvalidWorkerCount, "%d requested, must be 1-%d",
			opts.Workers, MaxVanityWorkers)
	}
	if err := ValidatePrefix(prefix); err != nil {
		return nil, err
	}
	if d := Difficulty(prefix); opts.MaxAttempts > 0 && d > MaxDifficultyRatio*float64(opts.MaxAttempts) {
		return nil, errors.Wrapf(ErrPrefixTooLong, "difficulty %.3g is out of reach of %d attempts",
			d, opts.MaxAttempts)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	random := opts.Random
	if random == nil {
		random = func(int) io.Reader {
			return bufio.NewReaderSize(rand.Reader, randomBufferSize)
		}
	}

	s := &vanitySearch{
		target:      "1" + prefix,
		maxAttempts: opts.MaxAttempts,
		logger:      logger.WithField("prefix", prefix),
	}
	s.logger.WithFields(logrus.Fields{
		"workers":    opts.Workers,
		"difficulty": Difficulty(prefix),
	}).Info("Starting vanity search")

	stopWatching := context.AfterFunc(ctx, func() { s.stop.Store(true) })
	defer stopWatching()

	start := time.Now()
	s.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go s.work(random(i))
	}
	s.wg.Wait()
	elapsed := time.Since(start)
	tries := s.tries.Load()

	switch {
	case s.key != nil:
		s.logger.WithFields(logrus.Fields{
			"tries":   tries,
			"elapsed": elapsed,
			"address": s.address,
		}).Info("Vanity address found")
		return &VanityResult{
			PrivateKey: s.key,
			WIF:        s.key.WIF(),
			Hex:        hex.EncodeToString(s.key.Bytes()),
			P2PKH:      s.address,
			Tries:      tries,
			Elapsed:    elapsed,
		}, nil
	case s.err != nil:
		return nil, s.err
	case ctx.Err() != nil:
		return nil, errors.Wrapf(ctx.Err(), "vanity search stopped after %d tries", tries)
	default:
		s.logger.WithField("tries", tries).Warn("Vanity search exhausted")
		return nil, errors.Wrapf(ErrSearchExhausted, "no match for %q after %d tries", prefix, tries)
	}
}

// vanitySearch is the state shared by the workers of one search. Only stop and
// tries are accessed concurrently; key, address and err are written by the
// single worker that flips stop and read after all workers are done.
type vanitySearch struct {
	target      string
	maxAttempts uint64
	logger      logrus.FieldLogger

	wg    sync.WaitGroup
	stop  atomic.Bool
	tries atomic.Uint64

	key     *PrivateKey
	address string
	err     error
}

func (s *vanitySearch) work(random io.Reader) {
	defer s.wg.Done()
	for !s.stop.Load() {
		n := s.tries.Add(1)
		if s.maxAttempts > 0 && n > s.maxAttempts {
			s.tries.Add(^uint64(0))
			return
		}

		key, err := GeneratePrivateKey(random)
		if err != nil {
			s.tries.Add(^uint64(0))
			if s.stop.CompareAndSwap(false, true) {
				s.err = err
			}
			return
		}
		address := key.PublicKey().BitcoinAddress()
		if strings.HasPrefix(address, s.target) {
			if s.stop.CompareAndSwap(false, true) {
				s.key, s.address = key, address
			}
			return
		}

		if n%progressInterval == 0 {
			s.logger.WithField("tries", n).Debug("Vanity search progress")
		}
	}
}
