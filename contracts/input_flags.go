package contracts

// LogoFlags holds the logo command options.
type LogoFlags struct {
	Padding    int
	Threshold  int
	Background string
	Quality    int
	Workers    int
	Format     string
}

// BannerFlags holds the banner command options.
type BannerFlags struct {
	Ratio   string
	Size    string
	Width   int
	Height  int
	Filter  string
	Quality int
	Workers int
	Format  string
}
