package metrics

// Rust grammar node kinds the operators look for.
const (
	kindFunctionItem     = "function_item"
	kindParameters       = "parameters"
	kindStructItem       = "struct_item"
	kindEnumItem         = "enum_item"
	kindFieldDeclaration = "field_declaration"
	kindEnumVariant      = "enum_variant"
	kindImplItem         = "impl_item"
	kindMacroInvocation  = "macro_invocation"
	kindMacroDefinition  = "macro_definition"
	kindUseDeclaration   = "use_declaration"
	kindScopedIdentifier = "scoped_identifier"
	kindIdentifier       = "identifier"
	kindAsyncBlock       = "async_block"
	kindCallExpression   = "call_expression"
)
