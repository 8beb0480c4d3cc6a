package service

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"unicode/utf8"

	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/metrics"
	"github.com/vaultpass/passgen/internal/model"
)

// ErrLengthTooLong is returned for requests above the configured maximum.
var ErrLengthTooLong = fmt.Errorf("%w: password length exceeds maximum", crypto.ErrConfiguration)

// GeneratorConfig holds the limits and defaults applied to every request.
type GeneratorConfig struct {
	DefaultLength       int
	MaxLength           int
	DefaultSpecialChars string
}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	cfg     GeneratorConfig
	metrics *metrics.Metrics
	newRand func() (*rand.Rand, error)
}

// NewGeneratorService creates a new GeneratorService. m may be nil.
func NewGeneratorService(cfg GeneratorConfig, m *metrics.Metrics) *GeneratorService {
	return &GeneratorService{
		cfg:     cfg,
		metrics: m,
		newRand: crypto.NewRand,
	}
}

// Generate produces a password based on the given request. Every call draws
// from its own random source, so Generate is safe for concurrent use.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	opts := crypto.PronounceableOptions{
		Length:       req.Length,
		Digits:       req.Digits,
		Special:      req.Special,
		SpecialChars: req.SpecialChars,
	}

	if opts.Length == 0 {
		opts.Length = s.cfg.DefaultLength
	}
	if opts.SpecialChars == "" {
		opts.SpecialChars = s.cfg.DefaultSpecialChars
	}

	if err := s.validate(opts); err != nil {
		slog.Debug("generation rejected", "length", opts.Length, "digits", opts.Digits, "special", opts.Special, "error", err)
		s.rejected("configuration")
		return model.GenerateResponse{}, err
	}

	r, err := s.newRand()
	if err != nil {
		s.rejected("random_source")
		return model.GenerateResponse{}, err
	}

	password, err := crypto.GeneratePronounceable(r, opts)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	if s.metrics != nil {
		s.metrics.IncrementGenerated()
	}

	return model.GenerateResponse{
		Password: password,
		Length:   utf8.RuneCountInString(password),
	}, nil
}

// validate applies the service limit on top of the generator's own checks.
func (s *GeneratorService) validate(opts crypto.PronounceableOptions) error {
	if s.cfg.MaxLength > 0 && opts.Length > s.cfg.MaxLength {
		return fmt.Errorf("%w (%d)", ErrLengthTooLong, s.cfg.MaxLength)
	}
	return opts.Validate()
}

func (s *GeneratorService) rejected(reason string) {
	if s.metrics != nil {
		s.metrics.IncrementRejected(reason)
	}
}
