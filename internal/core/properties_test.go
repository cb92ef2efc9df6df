package core

import (
	"path"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPropertyWebLinksUntouched(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	fi := testIndex()

	properties.Property("web links survive every rewrite", prop.ForAll(
		func(host, alias string) bool {
			text := "[" + alias + "](https://" + host + ".com/Plan) [[http://" + host + "#x]]"
			for _, to := range []Notation{Wiki, Markdown} {
				if ConvertNotation(text, "Home.md", to, fi, Options{Format: FormatShortest}) != text {
					return false
				}
			}
			return ReformatPaths(text, "Home.md", fi, Options{Format: FormatAbsolute}) == text
		},
		gen.Identifier(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestPropertyUnresolvedRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	fi := testIndex()

	properties.Property("unresolved wikilink with alias survives a round trip", prop.ForAll(
		func(target, alias string) bool {
			wiki := "[[zz" + target + "|" + alias + "]]"
			md := ConvertNotation(wiki, "Home.md", Markdown, fi, Options{})
			return ConvertNotation(md, "Home.md", Wiki, fi, Options{}) == wiki
		},
		gen.Identifier(),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}

func TestPropertyTransclusionPrecedence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("file#ref is always a transclusion", prop.ForAll(
		func(file, ref string) bool {
			wiki := Extract("[["+file+"#"+ref+"]]", "src.md", Options{})
			md := Extract("[]("+file+".md#"+ref+")", "src.md", Options{})
			return len(wiki) == 1 && wiki[0].Kind == WikiTransclusion && wiki[0].AliasOrRef == ref &&
				len(md) == 1 && md[0].Kind == MarkdownTransclusion && md[0].AliasOrRef == ref
		},
		gen.Identifier(),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}

func TestPropertyRelativeLink(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	dirs := gen.SliceOfN(3, gen.OneConstOf("a", "b", "c"))

	properties.Property("relative link resolves back to the target", prop.ForAll(
		func(from, to []string) bool {
			src := path.Join(append(from, "x.md")...)
			dst := path.Join(append(to, "y.md")...)
			return joinSource(src, RelativeLink(src, dst)) == dst
		},
		dirs,
		dirs,
	))

	properties.Property("relative link to self is empty", prop.ForAll(
		func(from []string) bool {
			p := path.Join(append(from, "x.md")...)
			return RelativeLink(p, p) == ""
		},
		dirs,
	))

	properties.TestingRun(t)
}

func TestPropertyBlockRefEncoding(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("block refs keep the sigil and lose spaces", prop.ForAll(
		func(words []string) bool {
			ref := "^" + strings.Join(words, " ")
			enc := encodeBlockRef(ref)
			return strings.HasPrefix(enc, "^") && !strings.Contains(enc, " ") && decodeLink(enc) == ref
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

func TestPropertyShortestAmbiguity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("a name shared by two files keeps its full path", prop.ForAll(
		func(dir, name string) bool {
			fi := NewFileIndex([]string{name + ".md", dir + "/" + name + ".md"})
			f := NewFile(dir + "/" + name + ".md")
			return FormatPath(f, "other.md", FormatShortest, fi) == dir+"/"+name
		},
		gen.Identifier(),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}
