// 指示: miu200521358
package minteractor

import (
	"strings"
	"unicode"

	"github.com/miu200521358/mu_mesh_export/pkg/domain/model"
)

const (
	// namingMaxLength は出力名の最大文字数。超過分は切り詰める。
	namingMaxLength = 100
	// namingFallback は変換結果が空になった場合の代替名。
	namingFallback = "mesh"
)

// unrealKnownPrefixes はUnreal命名で保持する既知のアセット接頭辞。
var unrealKnownPrefixes = map[string]struct{}{
	"SM": {}, "SK": {}, "BP": {}, "M": {}, "MI": {}, "T": {}, "A": {}, "S": {},
}

// ApplyNaming は接頭辞と接尾辞を付与した出力名へ命名規約を適用する。
func ApplyNaming(config *model.ExportConfig, baseName string) string {
	name := config.Prefix + baseName + config.Suffix
	return TransformName(name, config.Naming)
}

// TransformName は出力名へ命名規約を適用する。同じ規約を再適用しても結果は変わらない。
func TransformName(name string, convention model.NamingConvention) string {
	converted := formatName(name, convention)
	// PascalCase結合で単独大文字の並びが新たな語境界を生むことがあるため、
	// 変換結果が安定するまで再適用する。
	for iteration := 0; iteration < 3; iteration++ {
		next := formatName(converted, convention)
		if next == converted {
			break
		}
		converted = next
	}
	if converted == "" {
		converted = formatFallback(convention)
	}
	return truncateName(converted, convention)
}

// formatName は規約ごとの1回分の変換を適用する。
func formatName(name string, convention model.NamingConvention) string {
	switch convention {
	case model.NAMING_CONVENTION_GODOT:
		return formatSnake(tokenizeName(name), strings.ToLower)
	case model.NAMING_CONVENTION_UNITY:
		return formatSnake(tokenizeName(name), titleToken)
	case model.NAMING_CONVENTION_UNREAL:
		return formatUnreal(tokenizeName(name))
	default:
		return sanitizeDefault(name)
	}
}

// tokenizeName は名前を単語トークン列へ分解する。
// 英数字以外は区切りとし、小文字から大文字への変わり目、
// 大文字連続の末尾(次が小文字の場合)、英字と数字の境界で分割する。
func tokenizeName(name string) []string {
	var tokens []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, string(current))
			current = nil
		}
	}

	runes := []rune(name)
	for index, char := range runes {
		if !unicode.IsLetter(char) && !unicode.IsDigit(char) {
			flush()
			continue
		}
		if len(current) > 0 {
			previous := current[len(current)-1]
			switch {
			case unicode.IsLower(previous) && unicode.IsUpper(char):
				flush()
			case unicode.IsDigit(previous) != unicode.IsDigit(char):
				flush()
			case unicode.IsUpper(previous) && unicode.IsUpper(char) &&
				index+1 < len(runes) && unicode.IsLower(runes[index+1]):
				// 大文字連続の最後の1文字は次の単語の先頭とみなす。
				flush()
			}
		}
		current = append(current, char)
	}
	flush()
	return tokens
}

// formatSnake はトークンを変換してアンダースコアで結合する。
func formatSnake(tokens []string, transform func(string) string) string {
	parts := make([]string, 0, len(tokens))
	for _, token := range tokens {
		parts = append(parts, transform(token))
	}
	return strings.Join(parts, "_")
}

// formatUnreal はPascalCaseへ結合する。先頭トークンが既知接頭辞と
// 完全一致する場合は接頭辞として保持する。
func formatUnreal(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	if _, found := unrealKnownPrefixes[tokens[0]]; found && len(tokens) > 1 {
		return tokens[0] + "_" + concatPascal(tokens[1:])
	}
	return concatPascal(tokens)
}

func concatPascal(tokens []string) string {
	var builder strings.Builder
	for _, token := range tokens {
		builder.WriteString(titleToken(token))
	}
	return builder.String()
}

// titleToken はトークンの先頭を大文字、残りを小文字にする。
func titleToken(token string) string {
	runes := []rune(strings.ToLower(token))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// sanitizeDefault は英数字とアンダースコア、ハイフン以外を置換する。
// 数字が続くドットは連番サフィックスとして残す。
func sanitizeDefault(name string) string {
	runes := []rune(name)
	var builder strings.Builder
	for index, char := range runes {
		switch {
		case char >= 'A' && char <= 'Z', char >= 'a' && char <= 'z',
			char >= '0' && char <= '9', char == '_', char == '-':
			builder.WriteRune(char)
		case char == '.' && index+1 < len(runes) && unicode.IsDigit(runes[index+1]):
			builder.WriteRune(char)
		default:
			builder.WriteRune('_')
		}
	}
	return strings.Trim(builder.String(), "_")
}

// formatFallback は規約に合わせた代替名を返す。
func formatFallback(convention model.NamingConvention) string {
	switch convention {
	case model.NAMING_CONVENTION_UNITY, model.NAMING_CONVENTION_UNREAL:
		return titleToken(namingFallback)
	default:
		return namingFallback
	}
}

// truncateName は最大文字数を超えた名前を切り詰め、規約に沿った目印を付ける。
// 切り詰め済みの名前を再変換しても同じ結果になる。
func truncateName(name string, convention model.NamingConvention) string {
	runes := []rune(name)
	if len(runes) <= namingMaxLength {
		return name
	}
	marker := truncationMarker(convention)
	kept := runes[:namingMaxLength-len([]rune(marker))]
	trimmed := strings.TrimRight(string(kept), "_.")
	return trimmed + marker
}

func truncationMarker(convention model.NamingConvention) string {
	switch convention {
	case model.NAMING_CONVENTION_UNITY:
		return "_Cut"
	case model.NAMING_CONVENTION_UNREAL:
		return "Cut"
	default:
		return "_cut"
	}
}
