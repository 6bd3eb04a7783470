package view

// ThemeOps aplica o tema na raiz do documento e sincroniza o ícone do toggle
func ThemeOps(theme, icon string) []Op {
	return []Op{
		{Kind: KindAttr, Target: SelRoot, Name: "data-theme", Value: theme},
		{Kind: KindClassSet, Target: SelThemeIcon, Value: icon},
	}
}
