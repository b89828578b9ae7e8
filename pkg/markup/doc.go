// Package markup translates Markdown documentation into the internal markup
// language understood by the documentation generator.
//
// # Pipeline
//
// Process runs four passes over the input. Each pass reads the output of
// the previous one:
//
//   - Normalization: tabs are expanded and non-breaking spaces replaced.
//   - Quotations: fenced code blocks and `>` quoted sections.
//   - Blocks: headings, rules, link references, code and tables.
//   - Inline: emphasis, code spans, links, images, dashes and escapes.
//
// Commands such as `\code ... \endcode` or `@f$ ... @f$` are copied
// through every pass unchanged.
//
// # Pages
//
// ExtractPageTitle and DetectExplicitPage support turning a whole Markdown
// file into a page; see package page for the complete assembly.
package markup
