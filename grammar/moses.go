package grammar

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/scfg"
	"github.com/npillmayer/scfg/vocab"
)

// MosesFormat is the hierarchical phrase table format of the Moses decoder:
//
//    source LHS ||| target LHS ||| probabilities [||| alignment [||| counts]]
//
// The last token of each side is the left hand side label of that side. Nonterminals
// are written as a pair of labels "[S][T]", the first one for the source side and the
// second one for the target side. Slots are linked through the alignment field;
// without alignment, target nonterminals are linked in order of occurrence.
// Probabilities p are stored as costs -ln(p).
type MosesFormat struct{}

var (
	mosesDelimiter   = regexp.MustCompile(`\s*\|{3}\s*`)
	mosesNonterminal = regexp.MustCompile(`^\[([^\s\[\]]+)\]\[([^\s\[\]]+)\]$`)
	mosesLHS         = regexp.MustCompile(`^\[[^\s\[\]]+\]$`)
)

// mosesZeroCost is the cost assigned to probabilities ≤ 0.
const mosesZeroCost = 100.0

// Name is part of interface Format.
func (MosesFormat) Name() string { return "moses" }

// Description is part of interface Format.
func (MosesFormat) Description() string { return "Moses hierarchical phrase table format" }

// IsNonterminal is part of interface Format.
func (MosesFormat) IsNonterminal(token string) bool {
	return mosesNonterminal.MatchString(token)
}

// ParseLine is part of interface Format.
func (f MosesFormat) ParseLine(line string, v *vocab.Vocabulary, owner scfg.OwnerID) (*scfg.Rule, error) {
	fields, err := splitFields(line, mosesDelimiter, 3)
	if err != nil {
		return nil, err
	}
	srcWords := strings.Fields(fields[0])
	if len(srcWords) == 0 || !mosesLHS.MatchString(srcWords[len(srcWords)-1]) {
		return nil, &FormatError{Text: line, Reason: "source side does not end with a left-hand side label"}
	}
	lhs := v.Nonterminal(srcWords[len(srcWords)-1])
	srcWords = srcWords[:len(srcWords)-1]
	tgtWords := strings.Fields(fields[1])
	if len(tgtWords) > 0 && mosesLHS.MatchString(tgtWords[len(tgtWords)-1]) {
		tgtWords = tgtWords[:len(tgtWords)-1]
	}
	alignment := optionalField(fields, 3)
	points, err := scfg.ParseAlignment(alignment)
	if err != nil {
		return nil, &FormatError{Text: line, Reason: err.Error()}
	}
	costs, err := mosesCosts(fields[2])
	if err != nil {
		return nil, &FormatError{Text: line, Reason: err.Error()}
	}
	//
	src := borrowScratch()
	defer src.release()
	ordinal := make(map[int]int) // source position → arity position
	for i, w := range srcWords {
		if m := mosesNonterminal.FindStringSubmatch(w); m != nil {
			src.arity++
			ordinal[i] = src.arity
			src.ids = append(src.ids, v.Nonterminal(m[1]))
			continue
		}
		src.ids = append(src.ids, v.ID(w))
	}
	//
	aligned := make(map[int]int) // target position → arity position
	slots := newSlotAssigner(src.arity)
	for _, p := range points {
		if k, ok := ordinal[p.Source]; ok && p.Target < len(tgtWords) && f.IsNonterminal(tgtWords[p.Target]) {
			if _, dup := aligned[p.Target]; !dup {
				aligned[p.Target] = k
				slots.reserve(k)
			}
		}
	}
	tgt := borrowScratch()
	defer tgt.release()
	for j, w := range tgtWords {
		if !f.IsNonterminal(w) {
			tgt.ids = append(tgt.ids, v.ID(w))
			continue
		}
		slot, ok := aligned[j]
		if !ok {
			if slot, ok = slots.next(); !ok {
				return nil, &FormatError{Text: line, Reason: "no source nonterminal left to link " + w + " to"}
			}
		}
		tgt.ids = append(tgt.ids, -slot)
	}
	tracer().Debugf("moses rule %s → %v | %v", v.Word(lhs), src.ids, tgt.ids)
	return scfg.NewRule(owner, lhs, src.tokens(), tgt.tokens(), src.arity, costs, alignment), nil
}

// mosesCosts converts a field of probabilities into a field of costs.
func mosesCosts(probs string) (string, error) {
	var sb strings.Builder
	for i, w := range strings.Fields(probs) {
		p, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return "", err
		}
		c := mosesZeroCost
		if p > 0 {
			if c = -math.Log(p); c == 0 {
				c = 0 // no "-0" for p = 1
			}
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(c, 'f', 6, 64))
	}
	return sb.String(), nil
}

// ToWords is part of interface Format. Costs are rendered as probabilities.
func (f MosesFormat) ToWords(r *scfg.Rule, v *vocab.Vocabulary) string {
	var sb strings.Builder
	sb.WriteString(f.ToWordsWithoutFeatureScores(r, v))
	sb.WriteString(" |||")
	if scores, err := r.DenseScores(); err == nil {
		for _, c := range scores {
			sb.WriteByte(' ')
			sb.WriteString(strconv.FormatFloat(math.Exp(-float64(c)), 'g', 6, 64))
		}
	}
	if a, ok := r.Alignment(); ok {
		sb.WriteString(" ||| ")
		sb.WriteString(a)
	}
	return sb.String()
}

// ToWordsWithoutFeatureScores is part of interface Format.
func (MosesFormat) ToWordsWithoutFeatureScores(r *scfg.Rule, v *vocab.Vocabulary) string {
	pair := func(label string, _ int) string {
		return "[" + label + "][" + label + "]"
	}
	lhs := v.Word(r.LHS())
	var sb strings.Builder
	labels := writeSource(&sb, r, v, pair)
	sb.WriteString(sep(len(r.Source())))
	sb.WriteString(lhs)
	sb.WriteString(" ||| ")
	writeTarget(&sb, r, v, labels, pair)
	sb.WriteString(sep(len(r.Target())))
	sb.WriteString(lhs)
	return sb.String()
}

func sep(n int) string {
	if n == 0 {
		return ""
	}
	return " "
}
