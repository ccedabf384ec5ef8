package grammar

import (
	"regexp"
	"strings"

	"github.com/npillmayer/scfg"
	"github.com/npillmayer/scfg/vocab"
)

// HieroFormat is the original Hiero grammar format:
//
//    LHS ||| source ||| target [||| features [||| alignment]]
//
// Nonterminals are bracketed labels; on the source side they are decorated with
// their arity position ("[X,1]"), on the target side the decoration names the
// source nonterminal a slot is linked to.
type HieroFormat struct{}

var (
	hieroDelimiter   = regexp.MustCompile(`\s*\|{3}\s*`)
	hieroNonterminal = regexp.MustCompile(`^\[[^\s]+\]$`)
	hieroDecoration  = regexp.MustCompile(`,[0-9\s]+`)
)

// Name is part of interface Format.
func (HieroFormat) Name() string { return "hiero" }

// Description is part of interface Format.
func (HieroFormat) Description() string { return "Original Hiero format" }

// IsNonterminal is part of interface Format.
func (HieroFormat) IsNonterminal(token string) bool {
	return hieroNonterminal.MatchString(token)
}

// ParseLine is part of interface Format.
func (f HieroFormat) ParseLine(line string, v *vocab.Vocabulary, owner scfg.OwnerID) (*scfg.Rule, error) {
	fields, err := splitFields(line, hieroDelimiter, 3)
	if err != nil {
		return nil, err
	}
	lhs := v.ID(cleanNonterminal(fields[0]))
	//
	src := borrowScratch()
	defer src.release()
	for _, w := range strings.Fields(fields[1]) {
		if f.IsNonterminal(w) {
			src.arity++
			src.ids = append(src.ids, v.ID(cleanNonterminal(w)))
			continue
		}
		src.ids = append(src.ids, v.ID(w))
	}
	//
	tgtWords := strings.Fields(fields[2])
	slots := newSlotAssigner(src.arity)
	for _, w := range tgtWords { // decorated slots are reserved first
		if f.IsNonterminal(w) {
			slots.reserve(v.TargetNonterminalIndex(v.ID(w)))
		}
	}
	tgt := borrowScratch()
	defer tgt.release()
	for _, w := range tgtWords {
		if !f.IsNonterminal(w) {
			tgt.ids = append(tgt.ids, v.ID(w))
			continue
		}
		slot := v.TargetNonterminalIndex(v.ID(w))
		if slot == 0 { // undecorated: link to the next free source nonterminal
			var ok bool
			if slot, ok = slots.next(); !ok {
				return nil, &FormatError{Text: line, Reason: "no source nonterminal left to link " + w + " to"}
			}
		}
		tgt.ids = append(tgt.ids, -slot)
	}
	tracer().Debugf("hiero rule %s → %v | %v", fields[0], src.ids, tgt.ids)
	return scfg.NewRule(owner, lhs, src.tokens(), tgt.tokens(), src.arity,
		optionalField(fields, 3), optionalField(fields, 4)), nil
}

// ToWords is part of interface Format.
func (f HieroFormat) ToWords(r *scfg.Rule, v *vocab.Vocabulary) string {
	var sb strings.Builder
	sb.WriteString(f.ToWordsWithoutFeatureScores(r, v))
	a, hasAlignment := r.Alignment()
	if r.FeatureString() == "" && !hasAlignment {
		return sb.String()
	}
	sb.WriteString(" ||| ")
	sb.WriteString(r.FeatureString())
	if hasAlignment {
		sb.WriteString(" ||| ")
		sb.WriteString(a)
	}
	return sb.String()
}

// ToWordsWithoutFeatureScores is part of interface Format.
func (HieroFormat) ToWordsWithoutFeatureScores(r *scfg.Rule, v *vocab.Vocabulary) string {
	var sb strings.Builder
	sb.WriteString(v.Word(r.LHS()))
	sb.WriteString(" ||| ")
	labels := writeSource(&sb, r, v, func(label string, k int) string {
		return vocab.Decorate(label, k)
	})
	sb.WriteString(" ||| ")
	writeTarget(&sb, r, v, labels, func(label string, k int) string {
		return vocab.Decorate(label, k)
	})
	return sb.String()
}

// cleanNonterminal strips the arity position from a nonterminal token,
// e.g. "[X,1]" → "[X]".
func cleanNonterminal(token string) string {
	return hieroDecoration.ReplaceAllString(token, "")
}

// writeSource renders the source side of r and returns the labels of its
// nonterminals in order of occurrence.
func writeSource(sb *strings.Builder, r *scfg.Rule, v *vocab.Vocabulary,
	nt func(string, int) string) []string {
	//
	var labels []string
	for i, id := range r.Source() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if v.IsNonterminal(id) {
			labels = append(labels, v.Label(id))
			sb.WriteString(nt(v.Label(id), len(labels)))
			continue
		}
		sb.WriteString(v.Word(id))
	}
	return labels
}

// writeTarget renders the target side of r. Slot -k is rendered with the label of
// the k-th source nonterminal.
func writeTarget(sb *strings.Builder, r *scfg.Rule, v *vocab.Vocabulary, labels []string,
	nt func(string, int) string) {
	//
	for i, id := range r.Target() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if id >= 0 {
			sb.WriteString(v.Word(id))
			continue
		}
		k, label := -id, "X"
		if k <= len(labels) {
			label = labels[k-1]
		}
		sb.WriteString(nt(label, k))
	}
}
