package compiler

// onLoad implements the `load(path)` directive: spec.md §4.2 requires
// relative-first-then-stdlib resolution, execution in the parser's
// current context (so a load inside a when_start block nests the
// imported mappings under that condition), and rejection of
// self-recursive imports.
func (ctx *compileCtx) onLoad(c call, fileName string) error {
	if len(c.args) != 1 || c.args[0].kind != argString {
		return newError(SyntaxError, fileName, c.line, "load(path) expects one string argument")
	}
	if ctx.importer == nil {
		return newError(ImportFailed, fileName, c.line, "load() used with no Importer configured")
	}

	path := c.args[0].str
	content, canonical, err := ctx.importer.Resolve(fileName, path)
	if err != nil {
		return newError(ImportFailed, fileName, c.line, "could not resolve "+path+": "+err.Error())
	}

	for _, seen := range ctx.importStack {
		if seen == canonical {
			return newError(ImportCycle, fileName, c.line, "import cycle: "+canonical+" imports itself transitively")
		}
	}

	ctx.importStack = append(ctx.importStack, canonical)
	err = ctx.compileFile(content, canonical)
	ctx.importStack = ctx.importStack[:len(ctx.importStack)-1]
	return err
}
