package hclgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/RishabhK9/cloudist/internal/model"
)

// rawExprPrefixes lists the spellings that mark a string as a reference or
// call expression to emit unquoted. Resource-type prefixes cover the
// back-references the builder generates.
var rawExprPrefixes = []string{
	"var.",
	"local.",
	"module.",
	"data.",
	"aws_",
	"supabase_",
	"jsonencode(",
}

func isRawExpr(s string) bool {
	for _, p := range rawExprPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// tokensFor renders any builder-produced value as HCL expression tokens.
func tokensFor(value any) hclwrite.Tokens {
	switch v := value.(type) {
	case string:
		if isRawExpr(v) {
			return rawTokens(v)
		}
		if strings.Contains(v, "\n") {
			return heredocTokens(v)
		}
		return hclwrite.TokensForValue(cty.StringVal(v))
	case bool:
		return hclwrite.TokensForValue(cty.BoolVal(v))
	case int:
		return hclwrite.TokensForValue(cty.NumberIntVal(int64(v)))
	case int64:
		return hclwrite.TokensForValue(cty.NumberIntVal(v))
	case float64:
		// JSON numbers decode as float64; render whole values as integers.
		if v == float64(int64(v)) {
			return hclwrite.TokensForValue(cty.NumberIntVal(int64(v)))
		}
		return hclwrite.TokensForValue(cty.NumberFloatVal(v))
	case []any:
		return listTokens(v)
	case map[string]any:
		return mapTokens(v)
	case *model.OrderedConfig:
		return orderedObjectTokens(v)
	case nil:
		return hclwrite.TokensForValue(cty.NullVal(cty.DynamicPseudoType))
	default:
		// Last resort: the value's Go string form, quoted.
		return hclwrite.TokensForValue(cty.StringVal(fmt.Sprintf("%v", v)))
	}
}

// rawTokens emits expr verbatim. hclwrite only looks at the byte content
// when rendering, so a single pseudo-ident token carries any expression.
func rawTokens(expr string) hclwrite.Tokens {
	return hclwrite.Tokens{
		{Type: hclsyntax.TokenIdent, Bytes: []byte(expr)},
	}
}

// heredocTokens renders a multi-line string as a heredoc, preserving the
// exact newlines of the value.
func heredocTokens(s string) hclwrite.Tokens {
	body := s
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	return hclwrite.Tokens{
		{Type: hclsyntax.TokenOHeredoc, Bytes: []byte("<<-EOT\n")},
		{Type: hclsyntax.TokenStringLit, Bytes: []byte(body)},
		{Type: hclsyntax.TokenCHeredoc, Bytes: []byte("EOT")},
	}
}

// listTokens renders a slice as a bracketed tuple, recursing per element.
func listTokens(items []any) hclwrite.Tokens {
	toks := hclwrite.Tokens{{Type: hclsyntax.TokenOBrack, Bytes: []byte("[")}}
	for i, item := range items {
		if i > 0 {
			toks = append(toks, &hclwrite.Token{Type: hclsyntax.TokenComma, Bytes: []byte(", ")})
		}
		toks = append(toks, tokensFor(item)...)
	}
	return append(toks, &hclwrite.Token{Type: hclsyntax.TokenCBrack, Bytes: []byte("]")})
}

// mapTokens renders a plain map as an inline object expression with sorted
// keys, since Go map iteration order is not deterministic.
func mapTokens(m map[string]any) hclwrite.Tokens {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return objectTokens(keys, func(k string) any { return m[k] })
}

// orderedObjectTokens renders an ordered config as an inline object
// expression, keeping insertion order.
func orderedObjectTokens(cfg *model.OrderedConfig) hclwrite.Tokens {
	return objectTokens(cfg.Keys(), func(k string) any {
		v, _ := cfg.Get(k)
		return v
	})
}

// orderedFromMap converts a plain map into an OrderedConfig with sorted
// keys, so nested-block rendering is deterministic.
func orderedFromMap(m map[string]any) *model.OrderedConfig {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	cfg := model.NewConfig()
	for _, k := range keys {
		cfg.Set(k, m[k])
	}
	return cfg
}

func objectTokens(keys []string, get func(string) any) hclwrite.Tokens {
	toks := hclwrite.Tokens{{Type: hclsyntax.TokenOBrace, Bytes: []byte("{")}}
	for i, k := range keys {
		if i > 0 {
			toks = append(toks, &hclwrite.Token{Type: hclsyntax.TokenComma, Bytes: []byte(", ")})
		}
		toks = append(toks,
			&hclwrite.Token{Type: hclsyntax.TokenIdent, Bytes: []byte(" " + k)},
			&hclwrite.Token{Type: hclsyntax.TokenEqual, Bytes: []byte(" = ")},
		)
		toks = append(toks, tokensFor(get(k))...)
	}
	return append(toks, &hclwrite.Token{Type: hclsyntax.TokenCBrace, Bytes: []byte(" }")})
}
