package summary

import (
	"fmt"
	"strings"
)

// Prompt templates keyed by style, per language. Built once at init and
// never mutated at runtime. Unknown styles fall back to bullet_points,
// unknown languages to English.

var stylePromptsEN = map[Style]string{
	StyleBulletPoints: `Create a concise bullet-point summary of the document.
Format the output with clear bullet points (•) for main points.
Focus on the key information and main takeaways.
Keep each bullet point brief and actionable.`,

	StyleParagraph: `Create a flowing paragraph narrative summary of the document.
Write in clear, professional prose.
Organize information logically from most to least important.
Aim for 2-4 paragraphs depending on document length.`,

	StyleDetailed: `Create a comprehensive detailed analysis of the document.
Use markdown headings (##) to organize sections.
Include:
- Overview/Introduction
- Key Findings or Main Points
- Supporting Details
- Conclusions
Be thorough but avoid unnecessary repetition.`,

	StyleExecutive: `Create an executive summary for busy decision-makers.
Start with a "Bottom Line" statement.
Follow with 3-5 key takeaways.
Focus on actionable insights and business implications.
Keep it concise - one page maximum.`,

	StyleAcademic: `Create an academic-style summary of the document.
Structure with these sections:
- **Abstract**: Brief overview (2-3 sentences)
- **Key Arguments/Findings**: Main points from the text
- **Methodology** (if applicable): How conclusions were reached
- **Conclusions**: Final takeaways
Use formal academic language.`,
}

var stylePromptsID = map[Style]string{
	StyleBulletPoints: `Buatlah ringkasan dokumen dalam format poin-poin singkat.
Gunakan bullet points (•) yang jelas untuk poin-poin utama.
Fokus pada informasi kunci dan kesimpulan penting.
Buat setiap poin singkat dan dapat ditindaklanjuti.
Gunakan Bahasa Indonesia yang baik dan benar.`,

	StyleParagraph: `Buatlah ringkasan dokumen dalam bentuk paragraf naratif yang mengalir.
Tulis dengan gaya prosa yang jelas dan profesional.
Susun informasi secara logis dari yang paling penting.
Buat 2-4 paragraf tergantung panjang dokumen.
Gunakan Bahasa Indonesia yang baik dan benar.`,

	StyleDetailed: `Buatlah analisis detail dan komprehensif dari dokumen ini.
Gunakan heading markdown (##) untuk mengorganisir bagian-bagian.
Sertakan:
- Ikhtisar/Pendahuluan
- Temuan Kunci atau Poin Utama
- Detail Pendukung
- Kesimpulan
Buatlah menyeluruh namun hindari pengulangan.
Gunakan Bahasa Indonesia yang baik dan benar.`,

	StyleExecutive: `Buatlah ringkasan eksekutif untuk pengambil keputusan yang sibuk.
Mulai dengan pernyataan "Kesimpulan Utama".
Lanjutkan dengan 3-5 poin kunci.
Fokus pada wawasan yang dapat ditindaklanjuti dan implikasi bisnis.
Buat singkat - maksimal satu halaman.
Gunakan Bahasa Indonesia yang baik dan benar.`,

	StyleAcademic: `Buatlah ringkasan bergaya akademis dari dokumen ini.
Struktur dengan bagian-bagian ini:
- **Abstrak**: Ikhtisar singkat (2-3 kalimat)
- **Argumen/Temuan Kunci**: Poin-poin utama dari teks
- **Metodologi** (jika ada): Bagaimana kesimpulan dicapai
- **Kesimpulan**: Kesimpulan akhir
Gunakan bahasa akademis formal dalam Bahasa Indonesia.`,
}

var languageInstructions = map[Language]string{
	LanguageEnglish:    "Write the summary in English.",
	LanguageIndonesian: "Tulis ringkasan dalam Bahasa Indonesia yang baik dan benar.",
}

func stylePrompt(style Style, language Language) string {
	prompts := stylePromptsEN
	if language == LanguageIndonesian {
		prompts = stylePromptsID
	}
	if p, ok := prompts[style]; ok {
		return p
	}
	return prompts[StyleBulletPoints]
}

func languageInstruction(language Language) string {
	if instr, ok := languageInstructions[language]; ok {
		return instr
	}
	return languageInstructions[LanguageEnglish]
}

// buildSinglePrompt frames a document that fits in one call. The response is
// expected to carry TITLE:/SUMMARY: markers.
func buildSinglePrompt(text string, style Style, customInstructions string, language Language) string {
	var b strings.Builder
	b.WriteString("You are an expert document summarizer. Your task is to create a high-quality summary.\n\n")
	b.WriteString("LANGUAGE REQUIREMENT:\n")
	b.WriteString(languageInstruction(language))
	b.WriteString("\n\nSTYLE INSTRUCTIONS:\n")
	b.WriteString(stylePrompt(style, language))
	b.WriteString("\n\n")
	if customInstructions != "" {
		b.WriteString("CUSTOM USER INSTRUCTIONS:\n")
		b.WriteString(customInstructions)
		b.WriteString("\n\n")
	}
	b.WriteString("DOCUMENT CONTENT:\n---\n")
	b.WriteString(text)
	b.WriteString("\n---\n\n")
	b.WriteString("Please provide:\n")
	b.WriteString("1. A concise, descriptive title for this document (max 100 characters)\n")
	b.WriteString("2. The summary following the style and language instructions above\n\n")
	b.WriteString("Format your response as:\nTITLE: [Your generated title]\n\nSUMMARY:\n[Your summary content]")
	return b.String()
}

// buildChunkPrompt frames one segment of a larger document, identified by
// its position so the model knows it only sees a part.
func buildChunkPrompt(chunk Chunk, style Style, customInstructions string, language Language) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are summarizing part %d of %d of a document.\n\n", chunk.Index+1, chunk.Total)
	b.WriteString("LANGUAGE:\n")
	b.WriteString(languageInstruction(language))
	b.WriteString("\n\nSTYLE:\n")
	b.WriteString(stylePrompt(style, language))
	if customInstructions != "" {
		b.WriteString("\n\nINSTRUCTIONS:\n")
		b.WriteString(customInstructions)
	}
	b.WriteString("\n\nCONTENT:\n---\n")
	b.WriteString(chunk.Text)
	b.WriteString("\n---\n\n")
	b.WriteString("Provide a summary of this section in the requested style.")
	return b.String()
}

// buildMergePrompt asks the backend to polish ordered partial summaries into
// one cohesive result with TITLE:/SUMMARY: markers.
func buildMergePrompt(summaries []string, style Style, language Language) string {
	combined := strings.Join(summaries, "\n\n")
	styleName := strings.ReplaceAll(string(style), "_", " ")
	var b strings.Builder
	fmt.Fprintf(&b, "Merge these document section summaries into one cohesive %s summary.\n", styleName)
	b.WriteString("LANGUAGE: ")
	b.WriteString(languageInstruction(language))
	b.WriteString("\n\nSUMMARIES:\n")
	b.WriteString(combined)
	b.WriteString("\n\nCreate a unified summary that:\n")
	b.WriteString("- Eliminates redundancy\n- Maintains logical flow\n- Keeps the most important points\n\n")
	b.WriteString("Format:\nTITLE: [Concise Title]\nSUMMARY:\n[Unified Summary]")
	return b.String()
}
