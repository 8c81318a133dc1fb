// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package documents

import (
	"fmt"
	"strings"
)

// Categories are the graded aspects listed in the results section.
var Categories = []string{
	"Servicequalität",
	"Ambiente",
	"Produktqualität",
	"Preis-Leistungs-Relation",
	"Hygiene & Nachhaltigkeit",
	"Subjektiver Gesamteindruck",
}

// Grades maps a rating to one letter grade per entry of Categories.
func Grades(rating float64) []string {
	switch {
	case rating >= 4.8:
		return []string{"A", "A", "A", "A-", "A", "A"}
	case rating >= 4.5:
		return []string{"A", "A-", "A-", "B+", "A-", "A"}
	case rating >= 4.2:
		return []string{"A-", "B+", "A-", "B", "A-", "A-"}
	default:
		return []string{"B+", "B", "B+", "B", "B+", "B+"}
	}
}

type cuisine struct {
	keywords []string
	clause   string
}

// cuisines is checked in order; the first match wins.
var cuisines = []cuisine{
	{[]string{"vegetarisch", "fleischlos"}, " Das Angebot hebt eine vielfältige Auswahl an vegetarischen Speisen hervor."},
	{[]string{"panasiatisch", "sushi"}, " Panasiatische Spezialitäten und Sushi-Angebote prägen das kulinarische Profil."},
	{[]string{"vietnamesisch", "asiatisch"}, " Authentische vietnamesische Gerichte ergänzen das Angebot."},
	{[]string{"italienisch"}, " Klassische italienische Gerichte runden die Speisekarte ab."},
	{[]string{"burger"}, " Verschiedene Burger-Varianten sorgen für eine abwechslungsreiche Speisenauswahl."},
	{[]string{"syrisch"}, " Syrische Spezialitäten bieten eine aromatische Vielfalt im Speisenangebot."},
	{[]string{"griechisch"}, " Traditionelle griechische Gerichte sind ein Schwerpunkt des kulinarischen Profils."},
	{[]string{"türkisch"}, " Typisch türkische Speisen prägen das Angebot und sorgen für authentische Geschmacksnoten."},
}

// CuisineClause returns the sentence appended to the introduction for the
// first cuisine keyword found in description, or "".
func CuisineClause(description string) string {
	desc := strings.ToLower(description)
	for _, c := range cuisines {
		for _, kw := range c.keywords {
			if strings.Contains(desc, kw) {
				return c.clause
			}
		}
	}
	return ""
}

func introPool(name string) []string {
	return []string{
		fmt.Sprintf("Der vorliegende Testbericht fokussiert sich auf den Betrieb „%s“. Unter Berücksichtigung eines vielseitigen Angebots wurde eine detaillierte Prüfung durchgeführt.", name),
		fmt.Sprintf("Im Rahmen dieser Untersuchung wurde der Gastronomiebetrieb „%s“ einer eingehenden Analyse unterzogen. Besonderes Augenmerk galt der Angebotsvielfalt und den Serviceparametern.", name),
		fmt.Sprintf("Für die nachfolgende Bewertung stand der Betrieb „%s“ im Zentrum der Untersuchung. Dabei wurde die Angebotsstruktur sowie die Servicequalität sorgfältig erfasst.", name),
		fmt.Sprintf("Die vorliegende Beurteilung bezieht sich auf den Betrieb „%s“. Es wurde eine umfassende Evaluation durchgeführt, bei der die kulinarische Ausrichtung und der Service einbezogen wurden.", name),
		fmt.Sprintf("Gegenstand dieses Berichts ist der Gastronomiebetrieb „%s“. Die Erhebung erfolgte anhand eines standardisierten Prüfverfahrens mit Fokus auf Angebotsprofil und Serviceeffizienz.", name),
	}
}

var methodologyPool = []string{
	"Die Untersuchung erfolgte auf Basis eines kombinierten Verfahrens, bestehend aus visueller Inspektion, " +
		"unobtrusiven Beobachtungen sowie deskriptiver Datenüberprüfung. " +
		"Standardisierte Bewertungsraster wurden eingesetzt, um eine objektive Vergleichbarkeit zu gewährleisten.",
	"Die Bewertung stützt sich auf einen unangekündigten Besuch mit strukturierter Beobachtung der Abläufe " +
		"im Gastraum sowie eine Sichtprüfung der zugänglichen Bereiche. " +
		"Alle Kriterien wurden anhand eines einheitlichen Prüfkatalogs erfasst.",
	"Grundlage der Prüfung bildeten eine visuelle Begehung, die Beobachtung des Servicegeschehens " +
		"und ein Abgleich öffentlich verfügbarer Angaben zum Betrieb. " +
		"Die Einstufung erfolgte nach einem festen Bewertungsschema.",
	"Im Zuge der Erhebung wurden Ambiente, Service und Speisenangebot nach standardisierten Kriterien beobachtet " +
		"und dokumentiert. Ergänzend wurden Hygienemerkmale im sichtbaren Bereich geprüft, " +
		"um eine vergleichbare Gesamtbewertung zu ermöglichen.",
	"Das Prüfverfahren kombiniert eine anonyme Vor-Ort-Beobachtung mit einer strukturierten Auswertung " +
		"der gewonnenen Eindrücke. Ein einheitliches Bewertungsraster stellt sicher, " +
		"dass die Ergebnisse betriebsübergreifend vergleichbar bleiben.",
}

var discussionPool = []string{
	"Die Beobachtungen im Betrieb zeigten eine konstante Servicebereitschaft und eine flüssige Koordination im Team, die zu kurzen Wartezeiten führte.",
	"Während der Untersuchung fiel die angenehme Geräuschkulisse auf, die ein entspanntes Ambiente ermöglichte. Die Abläufe blieben auch bei hoher Auslastung reibungslos.",
	"Es zeigte sich eine effiziente Umsetzung der Bestellungen, wodurch auch in Stoßzeiten eine zufriedenstellende Geschwindigkeit erreicht wurde.",
	"Hygienestandards wurden insgesamt überzeugend eingehalten. Die Atmosphäre wirkte stimmig und unterstützte eine positive Gesamtwirkung.",
	"Bemerkenswert war die klare Struktur der Tischzuweisung, die zu einer gleichmäßigen Verteilung der Gäste führte und Überfüllung verhinderte.",
}

func conclusionPool(name string, rating float64) []string {
	r := fmt.Sprintf("%.1f", rating)
	return []string{
		"Abschließend erhält der Betrieb das Prädikat „empfehlenswert“, bestätigt durch die Bewertung von " + r +
			" Punkten (von maximal 5 möglichen Punkten). Eine erneute Evaluierung im Folgejahr wird angeraten.",
		"Der Betrieb überzeugt durch solide Performance in allen bewerteten Dimensionen. Die erzielten " + r +
			" Punkte (von maximal 5 möglichen Punkten) unterstreichen dies. Eine kontinuierliche Qualitätsüberwachung bleibt ratsam.",
		"Insgesamt lässt sich feststellen, dass „" + name + "“ mit einer Bewertung von " + r +
			" Punkten (von maximal 5 möglichen Punkten) eine überdurchschnittliche Servicequalität bietet. Ein Follow-up-Audit wird empfohlen.",
		"Der Testbericht bestätigt die gegebene Bewertung von " + r +
			" Punkten (von maximal 5 möglichen Punkten). Empfohlen wird eine periodische Nachkontrolle zur Aufrechterhaltung der Standards.",
		"Mit " + r + " von maximal 5 Punkten erhält der Betrieb eine deutliche Bestätigung seiner Leistungsfähigkeit. " +
			"Eine jährliche Re-Auditierung würde zusätzliche Optimierungspotenziale aufdecken.",
	}
}

// Certificate body text.
var certificateIntro = []string{
	"Hiermit wird bestätigt, dass der nachfolgend genannte",
	"Gastronomiebetrieb auf Qualität und Hygiene geprüft wurde.",
	"Hierbei wurde folgendes Ergebnis erzielt:",
}

// Invoice text.
const (
	reverseChargeNotice = "Hinweis nach Reverse-Charge-Verfahren: Die Steuerschuldnerschaft geht auf den " +
		"Leistungsempfänger über (Paragraph 13b UStG / Artikel 196 MwSt-Richtlinie)."
	thankYouNote = "Vielen Dank für Ihren Auftrag! Bitte überweisen Sie den Gesamtbetrag innerhalb von " +
		"14 Tagen auf das oben genannte Konto."
	lineItemDescription = "Freischaltung Testergebnis & Zertifikat"
)
