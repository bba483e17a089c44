package mcpserver

// QuestionFormatContract describes how a question is laid out on disk and
// which part of it ends up in the README.
const QuestionFormatContract = `# Question Format Contract

Every question lives in its own directory under ` + "`questions/<slug>/`" + `.

## Files

- ` + "`metadata.json`" + ` - required. Two-space indented JSON with a trailing newline:

` + "```" + `json
{
  "slug": "explain-hoisting",
  "ranking": 10,
  "level": "basic",
  "importance": "high",
  "featured": true,
  "published": true
}
` + "```" + `

- ` + "`<locale>.mdx`" + ` - one per locale, e.g. ` + "`en-US.mdx`" + `.

` + "```" + `markdown
---
title: Explain the concept of hoisting in JavaScript
---

## TL;DR

Short answer shown in the README.

---

## Hoisting

Longer answer shown only on the detail page.
` + "```" + `

## Rules

1. ` + "`slug`" + ` must equal the directory name.
2. ` + "`level`" + ` is one of basic, intermediate, advanced.
3. ` + "`ranking`" + ` orders featured and per-level lists, lowest first. Rankings are
   spaced by 10.
4. The front matter ` + "`title`" + ` is required.
5. The README shows only the text between ` + "`## TL;DR`" + ` and the first line that is
   exactly ` + "`---`" + `. A question without that section is left out of the README.
6. The TL;DR must not contain ` + "`###`" + ` headings; the README renders each answer
   under its own heading and a nested heading breaks the layout. Generation fails
   until it is removed.
7. Root-relative links such as ` + "`[x](/questions/y)`" + ` are rewritten to absolute URLs.
8. ` + "`TODO_REPLACE_BODY`" + ` in an unpublished question is replaced by the ` + "`answer`" + `
   command, which then sets ` + "`published`" + ` to true.
`
