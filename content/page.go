// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: content/page.go
// Summary: Storefront page files: YAML decoding, validation and conversion to panels.
// Everything coming out of this package is sanitized plain text.

package content

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/framegrace/texelstore/texelui/panelview"
)

// Kind identifies the widget a block is rendered as.
type Kind string

const (
	KindIngredients Kind = "ingredients"
	KindDescription Kind = "description"
	KindGallery     Kind = "gallery"
	KindCoupons     Kind = "coupons"
)

// Variant selects how a panel block displays its active index.
type Variant string

const (
	VariantSticky     Variant = "sticky"
	VariantDots       Variant = "dots"
	VariantThumbnails Variant = "thumbnails"
)

// Format is the markup a section body is written in.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatText     Format = "text"
)

// Page is a parsed, validated page file.
type Page struct {
	Title  string
	Blocks []Block
}

// Block is one storefront block.
type Block struct {
	Kind         Kind
	Variant      Variant
	Title        string
	Band         *BandSpec
	Sections     []Section
	Coupons      []Coupon
	ItemsPerView int
}

// BandSpec overrides the viewer's activation band for one block. Unset
// fields keep the viewer's value.
type BandSpec struct {
	Upper      *float64 `yaml:"upper"`
	Lower      *float64 `yaml:"lower"`
	Hysteresis *float64 `yaml:"hysteresis"`
}

// Over returns base with the fields set in s replaced.
func (s BandSpec) Over(base panelview.Band) panelview.Band {
	if s.Upper != nil {
		base.Upper = *s.Upper
	}
	if s.Lower != nil {
		base.Lower = *s.Lower
	}
	if s.Hysteresis != nil {
		base.Hysteresis = *s.Hysteresis
	}
	return base
}

// Section is a sanitized panel source.
type Section struct {
	ID    string
	Title string
	Body  []string
	Media *panelview.Media
}

// Coupon is one card of a coupon slider.
type Coupon struct {
	Code     string `yaml:"code"`
	Title    string `yaml:"title"`
	Discount string `yaml:"discount"`
	Expires  string `yaml:"expires"`
}

type pageFile struct {
	Title  string      `yaml:"title"`
	Blocks []blockFile `yaml:"blocks"`
}

type blockFile struct {
	Kind         string        `yaml:"kind"`
	Variant      string        `yaml:"variant"`
	Title        string        `yaml:"title"`
	Band         *BandSpec     `yaml:"band"`
	Sections     []sectionFile `yaml:"sections"`
	Coupons      []Coupon      `yaml:"coupons"`
	ItemsPerView int           `yaml:"items_per_view"`
}

type sectionFile struct {
	ID     string     `yaml:"id"`
	Title  string     `yaml:"title"`
	Body   string     `yaml:"body"`
	Format string     `yaml:"format"`
	Media  *mediaFile `yaml:"media"`
}

type mediaFile struct {
	URL string `yaml:"url"`
	Alt string `yaml:"alt"`
}

// Load reads and parses the page file at path.
func Load(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read page %s: %w", path, err)
	}
	page, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse page %s: %w", path, err)
	}
	return page, nil
}

// Parse decodes and validates a page. Unknown YAML fields are rejected.
func Parse(data []byte) (*Page, error) {
	var raw pageFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPage, err)
	}

	page := &Page{Title: Plain(raw.Title)}
	for i, rb := range raw.Blocks {
		block, err := buildBlock(rb)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		page.Blocks = append(page.Blocks, block)
	}
	return page, nil
}

func buildBlock(rb blockFile) (Block, error) {
	b := Block{
		Kind:         Kind(strings.ToLower(strings.TrimSpace(rb.Kind))),
		Variant:      Variant(strings.ToLower(strings.TrimSpace(rb.Variant))),
		Title:        Plain(rb.Title),
		ItemsPerView: rb.ItemsPerView,
	}
	switch b.Kind {
	case KindIngredients, KindDescription, KindGallery:
		if len(rb.Coupons) > 0 {
			return Block{}, fmt.Errorf("%w: coupons on a %s block", ErrInvalidPage, b.Kind)
		}
	case KindCoupons:
		if len(rb.Sections) > 0 {
			return Block{}, fmt.Errorf("%w: sections on a coupons block", ErrInvalidPage)
		}
	case "":
		return Block{}, fmt.Errorf("%w: missing kind", ErrInvalidPage)
	default:
		return Block{}, fmt.Errorf("%w: %q", ErrUnknownKind, rb.Kind)
	}

	switch b.Variant {
	case "":
		b.Variant = defaultVariant(b.Kind)
	case VariantSticky, VariantDots, VariantThumbnails:
	default:
		return Block{}, fmt.Errorf("%w: unknown variant %q", ErrInvalidPage, rb.Variant)
	}

	if rb.ItemsPerView < 0 {
		return Block{}, fmt.Errorf("%w: items_per_view %d", ErrInvalidPage, rb.ItemsPerView)
	}

	if rb.Band != nil {
		if err := validateBand(*rb.Band); err != nil {
			return Block{}, err
		}
		band := *rb.Band
		b.Band = &band
	}

	seen := make(map[string]bool)
	for i, rs := range rb.Sections {
		s, err := buildSection(rs)
		if err != nil {
			return Block{}, fmt.Errorf("section %d: %w", i, err)
		}
		if seen[s.ID] {
			return Block{}, fmt.Errorf("%w: duplicate section id %q", ErrInvalidPage, s.ID)
		}
		seen[s.ID] = true
		b.Sections = append(b.Sections, s)
	}

	for i, c := range rb.Coupons {
		c = Coupon{Code: Plain(c.Code), Title: Plain(c.Title), Discount: Plain(c.Discount), Expires: Plain(c.Expires)}
		if c.Code == "" {
			return Block{}, fmt.Errorf("%w: coupon %d has no code", ErrInvalidPage, i)
		}
		b.Coupons = append(b.Coupons, c)
	}
	return b, nil
}

func defaultVariant(k Kind) Variant {
	switch k {
	case KindGallery:
		return VariantThumbnails
	case KindDescription:
		return VariantDots
	default:
		return VariantSticky
	}
}

// validateBand checks the set fields and, with the default band filling the
// rest, that lower stays strictly below upper.
func validateBand(b BandSpec) error {
	for _, v := range []*float64{b.Upper, b.Lower, b.Hysteresis} {
		if v != nil && (*v < 0 || *v > 1) {
			return fmt.Errorf("%w: band value %v outside [0,1]", ErrInvalidPage, *v)
		}
	}
	if m := b.Over(panelview.DefaultBand()); m.Lower >= m.Upper {
		return fmt.Errorf("%w: band lower %v not below upper %v", ErrInvalidPage, m.Lower, m.Upper)
	}
	return nil
}

func buildSection(rs sectionFile) (Section, error) {
	s := Section{ID: strings.TrimSpace(rs.ID), Title: Plain(rs.Title)}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	format := Format(strings.ToLower(strings.TrimSpace(rs.Format)))
	switch format {
	case "", FormatMarkdown:
		body, err := Markdown(rs.Body)
		if err != nil {
			return Section{}, err
		}
		s.Body = body
	case FormatHTML:
		s.Body = HTML(rs.Body)
	case FormatText:
		s.Body = Text(rs.Body)
	default:
		return Section{}, fmt.Errorf("%w: unknown format %q", ErrInvalidPage, rs.Format)
	}

	if rs.Media != nil {
		if url, ok := MediaURL(rs.Media.URL); ok {
			s.Media = &panelview.Media{URL: url, Alt: Plain(rs.Media.Alt)}
		}
	}
	return s, nil
}

// Panels converts the block's sections into viewer panels in document order.
func (b *Block) Panels() []panelview.Panel {
	panels := make([]panelview.Panel, len(b.Sections))
	for i, s := range b.Sections {
		panels[i] = panelview.Panel{
			ID:    s.ID,
			Title: s.Title,
			Body:  append([]string(nil), s.Body...),
			Media: s.Media,
			Order: i,
		}
	}
	return panels
}

// PanelBlocks returns the blocks that render as synchronized panel lists.
func (p *Page) PanelBlocks() []*Block {
	var out []*Block
	for i := range p.Blocks {
		if p.Blocks[i].Kind != KindCoupons {
			out = append(out, &p.Blocks[i])
		}
	}
	return out
}
