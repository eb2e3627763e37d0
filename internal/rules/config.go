package rules

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// InfiniteDecks mirrors shoe.Infinite so config files can say decks = -1
// without this package importing the shoe model.
const InfiniteDecks = -1

// Config is a loaded rules file: the shoe size and the table rules.
type Config struct {
	Decks int
	Rules Rules
}

// DefaultConfig returns an infinite shoe under Default rules.
func DefaultConfig() Config {
	return Config{
		Decks: InfiniteDecks,
		Rules: Default(),
	}
}

type fileConfig struct {
	Shoe  *shoeBlock  `hcl:"shoe,block"`
	Rules *rulesBlock `hcl:"rules,block"`
}

type shoeBlock struct {
	Decks *int `hcl:"decks,optional"`
}

type rulesBlock struct {
	Allowed          []string `hcl:"allowed,optional"`
	MaxSplitDepth    *int     `hcl:"max_split_depth,optional"`
	DoubleAfterSplit *bool    `hcl:"double_after_split,optional"`
	DealerHitsSoft17 *bool    `hcl:"dealer_hits_soft_17,optional"`
	CanHitSplitAces  *bool    `hcl:"can_hit_split_aces,optional"`
	ErrorTolerance   *float64 `hcl:"error_tolerance,optional"`
}

// LoadConfig reads an HCL rules file. A missing file yields DefaultConfig.
func LoadConfig(filename string) (Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// ParseConfig decodes HCL source held in memory.
func ParseConfig(src []byte, filename string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (Config, error) {
	var raw fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := DefaultConfig()
	if raw.Shoe != nil && raw.Shoe.Decks != nil {
		cfg.Decks = *raw.Shoe.Decks
	}
	if raw.Rules != nil {
		if err := raw.Rules.apply(&cfg.Rules); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (b *rulesBlock) apply(r *Rules) error {
	if b.Allowed != nil {
		allowed, err := ParseActionSet(b.Allowed)
		if err != nil {
			return fmt.Errorf("rules.allowed: %w", err)
		}
		r.Allowed = allowed
	}
	if b.MaxSplitDepth != nil {
		r.MaxSplitDepth = *b.MaxSplitDepth
	}
	if b.DoubleAfterSplit != nil {
		r.DoubleAfterSplit = *b.DoubleAfterSplit
	}
	if b.DealerHitsSoft17 != nil {
		r.DealerHitsSoft17 = *b.DealerHitsSoft17
	}
	if b.CanHitSplitAces != nil {
		r.CanHitSplitAces = *b.CanHitSplitAces
	}
	if b.ErrorTolerance != nil {
		r.ErrorTolerance = *b.ErrorTolerance
	}
	return nil
}

// Validate validates the shoe size and rules.
func (c Config) Validate() error {
	if c.Decks < InfiniteDecks {
		return fmt.Errorf("invalid deck count %d (use -1 for an infinite shoe)", c.Decks)
	}
	if c.Decks == 0 {
		return fmt.Errorf("deck count must be positive or -1")
	}
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	return nil
}
