// Package oracle assembles reading content from a fixed set of section
// templates and serves it through the Oracle interface.
package oracle

import (
	"fmt"

	"github.com/rcliao/cosmic-whispers/internal/model"
	"github.com/rcliao/cosmic-whispers/internal/zodiac"
)

// Section titles.
const (
	TitleOverallEnergy         = "Overall Energy"
	TitleKeyInsight            = "Key Insight"
	TitleCelestialInfluences   = "Celestial Influences"
	TitleSunSignAnalysis       = "Sun Sign Analysis"
	TitlePlanetaryAlignments   = "Planetary Alignments"
	TitleDarkCarnivalWarning   = "Dark Carnival Warning"
	TitleFutureAlignment       = "Future Alignment"
	TitleCompatibilityEnergies = "Compatibility Energies"
	TitleStrengths             = "Strengths"
	TitleChallenges            = "Challenges"
	TitleCosmicPathwayForward  = "Cosmic Pathway Forward"
)

// template renders one section for a resolved sign.
type template struct {
	title string
	text  func(sign string) string
}

func fixed(title, text string) template {
	return template{title: title, text: func(string) string { return text }}
}

var (
	overallEnergy = template{
		title: TitleOverallEnergy,
		text: func(sign string) string {
			return fmt.Sprintf("The cosmic energies surrounding you, dear %s, are in a state of mystical flux. "+
				"The Dark Carnival's tents shimmer with anticipation as your celestial blueprint unfolds before "+
				"Madame Nebula's eyes. The stars whisper of transformation and hidden potential waiting to be discovered.", sign)
		},
	}

	keyInsight = fixed(TitleKeyInsight,
		"The alignment of Mars with your natal Jupiter suggests a period of expansion and growth. However, the "+
			"carnival whispers warnings of impulsivity. Fortune favors the bold, but not the reckless. Consider your "+
			"next moves with both courage and caution.")

	celestialInfluences = fixed(TitleCelestialInfluences,
		"Venus casts her glow upon your seventh house, illuminating matters of partnership and harmony. Saturn's "+
			"stern gaze brings structure to your ambitions, while Mercury's dance brings messages from beyond the veil. "+
			"The Dark Carnival's mirror reflects these planetary energies in the tapestry of your daily life.")

	sunSignAnalysis = template{
		title: TitleSunSignAnalysis,
		text: func(sign string) string {
			return fmt.Sprintf("As a %s, your essence is characterized by %s. The carnival's endless night sky "+
				"amplifies these traits, bringing them into sharper focus during this celestial cycle.",
				sign, zodiac.Trait(sign))
		},
	}

	planetaryAlignments = fixed(TitlePlanetaryAlignments,
		"The current transit of Jupiter through your tenth house heralds professional opportunities that may seem "+
			"too good to be true. The Carnival's Oracle confirms these are genuine, but warns of hidden costs. Mars in "+
			"retrograde suggests inner conflicts that must be resolved before external success can be fully embraced.")

	darkCarnivalWarning = fixed(TitleDarkCarnivalWarning,
		"Beware the shadow of Neptune's illusion in your financial sector. The carnival's House of Mirrors reveals "+
			"distortions in how you perceive value. Not all that glitters in the cosmic vault is gold, and some "+
			"opportunities may be mirages designed to lead you astray.")

	futureAlignment = fixed(TitleFutureAlignment,
		"When the moon enters your sign next week, a door will open that has long been sealed. The Carnival's Wheel "+
			"of Fortune spins in your favor, but only if you recognize the opportunity disguised as an ordinary moment. "+
			"Look for signs in unexpected places, particularly from those born under fire signs.")

	compatibilityEnergies = fixed(TitleCompatibilityEnergies,
		"The cosmic dance between your charts reveals a fascinating interplay of elements. Your earth meets their "+
			"water, creating a nurturing environment for growth, yet also risking erosion if boundaries aren't "+
			"maintained. The Carnival's Mirror of Relationships reflects both potential harmony and necessary challenges.")

	strengths = fixed(TitleStrengths,
		"Your Venus harmoniously aspects their Mars, creating passionate creative energy and mutual attraction that "+
			"transcends the physical. The Carnival's Tent of Union glows brightly when your Mercury and their Jupiter "+
			"connect, facilitating deep understanding and intellectual growth between you.")

	challenges = fixed(TitleChallenges,
		"Saturn's position indicates potential power struggles when responsibilities are divided. The Dark Carnival "+
			"warns that unspoken expectations may create phantom tensions. Address these shadows directly before they "+
			"manifest as real obstacles between you.")

	cosmicPathwayForward = fixed(TitleCosmicPathwayForward,
		"The North Node suggests your souls have met in previous carnival cycles. Your connection serves a greater "+
			"purpose in both your evolutionary journeys. Nurture communication during Mercury retrograde periods, and "+
			"use full moons to renew your shared intentions.")
)

// additional maps each reading type to the sections that follow Overall Energy.
var additional = map[model.ReadingType][]template{
	model.ReadingQuick: {keyInsight},
	model.ReadingFull:  {celestialInfluences, darkCarnivalWarning, futureAlignment},
	model.ReadingDeepDive: {
		celestialInfluences, sunSignAnalysis, planetaryAlignments, darkCarnivalWarning, futureAlignment,
	},
	model.ReadingCompatibility: {compatibilityEnergies, strengths, challenges, cosmicPathwayForward},
}

// Generate builds the ordered sections for a reading. It is a pure function
// of d. Unknown reading types get the Overall Energy section only.
func Generate(d model.UserDetails) []model.ReadingSection {
	sign := zodiac.Resolve(d.BirthDate)

	tmpls := []template{overallEnergy}
	if extra, ok := additional[d.ReadingType]; ok {
		tmpls = append(tmpls, extra...)
	}

	sections := make([]model.ReadingSection, 0, len(tmpls))
	for _, t := range tmpls {
		sections = append(sections, model.ReadingSection{Title: t.title, Content: t.text(sign)})
	}
	return sections
}
