package scfg

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FeatureVector maps feature names to values.
type FeatureVector map[string]float32

// DenseFeatureName returns the name of the i-th unnamed feature of a grammar.
func DenseFeatureName(owner OwnerID, i int) string {
	return fmt.Sprintf("tm_%s_%d", owner, i)
}

// ParseFeatures parses the feature field of a grammar rule. Plain numbers are dense
// features and get named by their position (see DenseFeatureName); tokens of the
// form name=value are sparse features and keep their name.
func ParseFeatures(owner OwnerID, text string) (FeatureVector, error) {
	fv := FeatureVector{}
	dense := 0
	for _, tok := range strings.Fields(text) {
		name, value := "", tok
		if i := strings.LastIndexByte(tok, '='); i >= 0 {
			name, value = tok[:i], tok[i+1:]
		}
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", tok, err)
		}
		if name == "" {
			name = DenseFeatureName(owner, dense)
			dense++
		}
		fv[name] = float32(v)
	}
	return fv, nil
}

func denseVector(owner OwnerID, scores []float32) FeatureVector {
	fv := make(FeatureVector, len(scores))
	for i, s := range scores {
		fv[DenseFeatureName(owner, i)] = s
	}
	return fv
}

// Names returns the feature names of fv in lexical order.
func (fv FeatureVector) Names() []string {
	names := make([]string, 0, len(fv))
	for n := range fv {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// String renders fv as space separated name=value pairs, sorted by name.
func (fv FeatureVector) String() string {
	var sb strings.Builder
	for i, n := range fv.Names() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(n)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatFloat(float64(fv[n]), 'g', -1, 32))
	}
	return sb.String()
}

// AlignmentPoint links a source position to a target position.
type AlignmentPoint struct {
	Source, Target int
}

// ParseAlignment parses an alignment annotation like "0-0 1-2 2-1".
func ParseAlignment(text string) ([]AlignmentPoint, error) {
	var points []AlignmentPoint
	for _, tok := range strings.Fields(text) {
		i := strings.IndexByte(tok, '-')
		if i <= 0 || i == len(tok)-1 {
			return nil, fmt.Errorf("malformed alignment point %q", tok)
		}
		s, err := strconv.Atoi(tok[:i])
		if err != nil {
			return nil, fmt.Errorf("malformed alignment point %q: %w", tok, err)
		}
		t, err := strconv.Atoi(tok[i+1:])
		if err != nil {
			return nil, fmt.Errorf("malformed alignment point %q: %w", tok, err)
		}
		points = append(points, AlignmentPoint{Source: s, Target: t})
	}
	return points, nil
}
