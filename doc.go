// Package tex2html converts LaTeX résumé sources into styled,
// standalone HTML documents.
//
// The conversion has three stages. A generic renderer turns LaTeX
// constructs into plain HTML and reduces unknown macro invocations to
// marker spans. A pipeline of ordered rewriting passes then rebuilds the
// résumé structure from those markers, consuming macro argument tuples
// extracted from the raw source. Finally the fragment is wrapped into a
// complete document with an inlined stylesheet.
//
// Basic usage:
//
//	conv, err := tex2html.NewConverter()
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := conv.Convert(ctx, tex2html.Input{Source: src})
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.WriteFile("resume.html", []byte(res.HTML), 0o644)
package tex2html
