// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/staranto/pengdash/internal/table"
)

var digitsRegex = regexp.MustCompile(`-?\d+`)

// Attr represents each of the columns to be included in the output.
type Attr struct {
	// The dataset column to read.
	Key string
	// Should this Attr be included in output or is it just
	// intended for filtering and sorting?
	Include bool
	// The key to use in the output. This is also the column title when
	// output=text.
	OutputKey string
	// Transformation spec to apply to the output value.
	TransformSpec string
}

// Transform applies the TransformSpec to a single cell. Strings honor case
// (l, u) and length (n, or -n to elide the middle). Numbers honor comma
// grouping (c) and a fixed number of decimals (n).
func (a *Attr) Transform(value interface{}) interface{} {
	if a.TransformSpec == "" {
		return value
	}

	switch v := value.(type) {
	case string:
		return a.transformString(v)
	case float64:
		return a.transformNumber(v)
	default:
		return value
	}
}

func (a *Attr) transformString(result string) string {
	// We need to know which case transformation appears last.  This covers the
	// case where there has been a global case transformation prepended to the
	// attrs transformation and, thus, allows the attr's to carry more weight.
	// IOW...  --attrs '*::U,species::l' will be lower case.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	// Same logic as above re: case.  This allows a more specific length
	// transformation to override a global one.
	if l, ok := a.lastDigits(); ok {
		abs := int(math.Abs(float64(l)))
		if len(result) > abs {
			if l < 0 {
				lr := abs/2 - 1
				if lr < 1 {
					lr = 1
				}
				result = result[0:lr] + ".." + result[len(result)-lr:]
			} else {
				result = result[:l]
			}
		}
	}

	return result
}

func (a *Attr) transformNumber(v float64) interface{} {
	comma := strings.ContainsAny(a.TransformSpec, "cC")
	digits, hasDigits := a.lastDigits()
	if hasDigits && digits < 0 {
		hasDigits = false
	}

	switch {
	case comma && hasDigits:
		return humanize.CommafWithDigits(v, digits)
	case comma:
		return humanize.Commaf(v)
	case hasDigits:
		return strconv.FormatFloat(v, 'f', digits, 64)
	}
	return v
}

func (a *Attr) lastDigits() (int, bool) {
	match := digitsRegex.FindAllString(a.TransformSpec, -1)
	if len(match) == 0 {
		return 0, false
	}
	// Take the last (overriding) match.
	l, err := strconv.Atoi(match[len(match)-1])
	if err != nil {
		return 0, false
	}
	return l, true
}

type AttrList []Attr

// Return a string representation of the AttrList in --attrs flag format.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Parse each spec from the --attrs flag and add it to the AttrList.
func (a *AttrList) Set(value string) error {
	if value == "" {
		return nil
	}

	const (
		columnIdx = iota
		outputIdx
		transformIdx
	)

	// There are three : delimited fields in each spec.  The first is the column
	// to read.  The second is the key to use in the output.  The third is the
	// transformation spec to apply to the output value.  The latter two are
	// optional and the output key defaults to the column name.
	specs := strings.Split(value, ",")
specloop:
	for _, spec := range specs {
		if strings.TrimSpace(spec) == "" {
			continue
		}

		attr := Attr{
			Include: true,
		}

		fields := strings.Split(spec, ":")
		if len(fields) > transformIdx+1 {
			return fmt.Errorf("invalid attr spec: %s", spec)
		}

		// If the column begins with a !, it is excluded from the output.
		attr.Key = strings.TrimSpace(fields[columnIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("invalid attr spec: %s", spec)
		}

		if attr.Key == "*" {
			attr.Include = false
		}

		attr.OutputKey = attr.Key
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		// If the attr already exists in the list (because it's one of the defaults
		// or the user double-entered it) just apply the OutputKey, Include and
		// TransformSpec to the existing Attr.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec inserts a global transform spec into the front of all
// attrs in the list.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""

	// Find the global transform spec.  If there is more than one, we're not
	// dealing with it and just taking the first.
	for i := range *a {
		if (*a)[i].Key == "*" {
			spec = (*a)[i].TransformSpec
			break
		}
	}

	if spec == "" {
		return nil
	}

	for i := range *a {
		if (*a)[i].Key == "*" {
			continue
		}
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}

	return nil
}

func (a *AttrList) Type() string {
	return "list"
}

// ForSchema builds the AttrList for a table. An empty spec keeps every
// column. A spec naming columns keeps only those, in spec order, unless it
// also carries a "*" entry, in which case every column is kept and the named
// entries adjust them.
func ForSchema(schema table.Schema, spec string) (AttrList, error) {
	var requested AttrList
	if err := requested.Set(spec); err != nil {
		return nil, err
	}

	wildcard := len(requested) == 0
	for _, attr := range requested {
		if attr.Key == "*" {
			wildcard = true
		}
	}

	var list AttrList
	if wildcard {
		list = make(AttrList, 0, len(schema))
		for _, c := range schema {
			list = append(list, Attr{Key: c.Name, OutputKey: c.Name, Include: true})
		}
	}
	if err := list.Set(spec); err != nil {
		return nil, err
	}

	for _, attr := range list {
		if attr.Key != "*" && schema.Index(attr.Key) < 0 {
			return nil, fmt.Errorf("%w: %s", table.ErrMissingColumn, attr.Key)
		}
	}

	if err := list.SetGlobalTransformSpec(); err != nil {
		return nil, err
	}
	return list, nil
}

// Included returns the attrs that produce output, in order.
func (a AttrList) Included() AttrList {
	var out AttrList
	for _, attr := range a {
		if attr.Include && attr.Key != "*" {
			out = append(out, attr)
		}
	}
	return out
}

// Lookup finds the attr whose output key, or failing that column key, is name.
func (a AttrList) Lookup(name string) (Attr, bool) {
	for _, attr := range a {
		if attr.OutputKey == name {
			return attr, true
		}
	}
	for _, attr := range a {
		if attr.Key == name {
			return attr, true
		}
	}
	return Attr{}, false
}
