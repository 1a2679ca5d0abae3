package content

// DefaultContent returns the built-in copy used whenever the remote
// document is missing a field or is absent entirely. Readers never see a
// localized field without both locales filled in.
func DefaultContent() SiteContent {
	return SiteContent{
		Hero: HeroSection{
			Role: LocalizedText{
				PTBR: "Engenheiro de Software · IA & Dados · Produto",
				EN:   "Software Engineer · AI & Data · Product",
			},
			Title: LocalizedText{
				PTBR: "Arquiteto de Sistemas",
				EN:   "Systems Architect",
			},
			Subtitle: LocalizedText{
				PTBR: "Da arquitetura mobile ao backend orientado a dados. Construo sistemas que pensam, escalam e geram resultado real para o negocio.",
				EN:   "From mobile architecture to data-driven backend. I build systems that think, scale, and drive real business outcomes.",
			},
			CTA: LocalizedText{
				PTBR: "Fale comigo",
				EN:   "Let's Talk",
			},
		},
		About: AboutSection{
			Title: LocalizedText{
				PTBR: "Sobre",
				EN:   "About",
			},
			P1: LocalizedText{
				PTBR: "Sou um engenheiro com mais de 10 anos de experiencia construindo produtos digitais de ponta a ponta, do design de interface a arquitetura de dados.",
				EN:   "I'm an engineer with 10+ years of experience building digital products end to end, from interface design to data architecture.",
			},
			P2: LocalizedText{
				PTBR: "Trabalho na intersecao entre tecnologia e negocio, com foco em sistemas escalaveis e experiencias minimalistas.",
				EN:   "I work at the intersection of technology and business, focused on scalable systems and minimalist experiences.",
			},
			SkillsTitle: LocalizedText{
				PTBR: "Habilidades",
				EN:   "Skills",
			},
			Skills:       []string{"React", "TypeScript", "Next.js", "WebGL", "Node.js"},
			ProfileImage: "/images/profile.JPG",
		},
		Contact: ContactSection{
			Title: LocalizedText{
				PTBR: "Contato",
				EN:   "Contact",
			},
			Email: "contato@mauro-rocha.com.br",
			FooterText: LocalizedText{
				PTBR: "Vamos construir algo de alto impacto.",
				EN:   "Let's build something with real impact.",
			},
		},
	}
}
