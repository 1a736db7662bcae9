package document

import "encoding/json"

/*
Responsibilities
- Model the output block sequence as a tagged variant, not a class hierarchy
- Own JSON encoding for every block kind
- Carry no behavior beyond what serialization and dedupe fingerprinting need

Design Principles
- Pattern matching over inheritance: callers type-switch on Block
- Every concrete block type marshals its own "type" discriminator
- No block type owns DOM nodes; extraction has already copied out strings
*/

// BlockKind is the "type" discriminator of the output JSON.
type BlockKind string

const (
	KindHeading   BlockKind = "heading"
	KindParagraph BlockKind = "paragraph"
	KindList      BlockKind = "list"
	KindTable     BlockKind = "table"
	KindCTA       BlockKind = "cta"
	KindAccordion BlockKind = "accordion"
	KindFAQ       BlockKind = "faq"
	KindTabset    BlockKind = "tabset"
)

// Role is the only currently-defined value of Block.Meta.Role.
type Role string

const (
	RoleEyebrow Role = "eyebrow"
	RoleRouter  Role = "router"
)

// Meta is the common optional annotation every block variant may carry.
type Meta struct {
	Role Role `json:"role,omitempty"`
}

// Block is implemented by every concrete block variant. Kind identifies the
// variant for type switches (dedupe fingerprinting, post-processing passes);
// each variant also implements json.Marshaler directly so the wire format
// needs no reflection-based tagging scheme.
type Block interface {
	json.Marshaler
	Kind() BlockKind
}

// Heading is a level 1-6 section title.
type Heading struct {
	Level int
	Text  string
	Meta  *Meta
}

func (h Heading) Kind() BlockKind { return KindHeading }

func (h Heading) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  BlockKind `json:"type"`
		Level int       `json:"level"`
		Text  string    `json:"text"`
		Meta  *Meta     `json:"meta,omitempty"`
	}{KindHeading, h.Level, h.Text, h.Meta})
}

// Paragraph is a run of body text.
type Paragraph struct {
	Text string
	Meta *Meta
}

func (p Paragraph) Kind() BlockKind { return KindParagraph }

func (p Paragraph) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type BlockKind `json:"type"`
		Text string    `json:"text"`
		Meta *Meta     `json:"meta,omitempty"`
	}{KindParagraph, p.Text, p.Meta})
}

// List is an ordered or unordered set of ≥2 items.
type List struct {
	Ordered bool
	Items   []string
	Meta    *Meta
}

func (l List) Kind() BlockKind { return KindList }

func (l List) MarshalJSON() ([]byte, error) {
	items := l.Items
	if items == nil {
		items = []string{}
	}
	return json.Marshal(struct {
		Type    BlockKind `json:"type"`
		Ordered bool      `json:"ordered"`
		Items   []string  `json:"items"`
		Meta    *Meta     `json:"meta,omitempty"`
	}{KindList, l.Ordered, items, l.Meta})
}

// Table is a row-major grid of cell texts.
type Table struct {
	Rows [][]string
	Meta *Meta
}

func (tb Table) Kind() BlockKind { return KindTable }

func (tb Table) MarshalJSON() ([]byte, error) {
	rows := tb.Rows
	if rows == nil {
		rows = [][]string{}
	}
	return json.Marshal(struct {
		Type BlockKind  `json:"type"`
		Rows [][]string `json:"rows"`
		Meta *Meta      `json:"meta,omitempty"`
	}{KindTable, rows, tb.Meta})
}

// CTA is a call-to-action link or button.
type CTA struct {
	Text string
	Href string
	Meta *Meta
}

func (c CTA) Kind() BlockKind { return KindCTA }

func (c CTA) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type BlockKind `json:"type"`
		Text string    `json:"text"`
		Href string    `json:"href,omitempty"`
		Meta *Meta     `json:"meta,omitempty"`
	}{KindCTA, c.Text, c.Href, c.Meta})
}

// Accordion is a <details>/disclosure style collapsible section.
type Accordion struct {
	Title         string
	ContentBlocks []Block
	Meta          *Meta
}

func (a Accordion) Kind() BlockKind { return KindAccordion }

func (a Accordion) MarshalJSON() ([]byte, error) {
	content := a.ContentBlocks
	if content == nil {
		content = []Block{}
	}
	return json.Marshal(struct {
		Type          BlockKind `json:"type"`
		Title         string    `json:"title"`
		ContentBlocks []Block   `json:"content_blocks"`
		Meta          *Meta     `json:"meta,omitempty"`
	}{KindAccordion, a.Title, content, a.Meta})
}

// FAQ is a disclosure whose title reads as a question.
type FAQ struct {
	Question     string
	AnswerBlocks []Block
	Meta         *Meta
}

func (f FAQ) Kind() BlockKind { return KindFAQ }

func (f FAQ) MarshalJSON() ([]byte, error) {
	answers := f.AnswerBlocks
	if answers == nil {
		answers = []Block{}
	}
	return json.Marshal(struct {
		Type         BlockKind `json:"type"`
		Question     string    `json:"question"`
		AnswerBlocks []Block   `json:"answer_blocks"`
		Meta         *Meta     `json:"meta,omitempty"`
	}{KindFAQ, f.Question, answers, f.Meta})
}

// Tab is one tab of a Tabset.
type Tab struct {
	Title         string  `json:"title"`
	ContentBlocks []Block `json:"content_blocks"`
}

// Tabset is a set of ≥2 tabs, each owning its own content sequence.
type Tabset struct {
	Tabs []Tab
	Meta *Meta
}

func (t Tabset) Kind() BlockKind { return KindTabset }

func (t Tabset) MarshalJSON() ([]byte, error) {
	tabs := t.Tabs
	if tabs == nil {
		tabs = []Tab{}
	}
	for i := range tabs {
		if tabs[i].ContentBlocks == nil {
			tabs[i].ContentBlocks = []Block{}
		}
	}
	return json.Marshal(struct {
		Type BlockKind `json:"type"`
		Tabs []Tab     `json:"tabs"`
		Meta *Meta     `json:"meta,omitempty"`
	}{KindTabset, tabs, t.Meta})
}
