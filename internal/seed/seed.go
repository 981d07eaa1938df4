package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	authorModel "docmanager-backend/internal/domains/author/model"
	authorService "docmanager-backend/internal/domains/author/service"
	documentModel "docmanager-backend/internal/domains/document/model"
	documentService "docmanager-backend/internal/domains/document/service"
	"docmanager-backend/internal/shared"
)

type sampleDocument struct {
	title      string
	body       string
	references []string
	authors    []int // indexes into sampleAuthors
}

var sampleAuthors = [][2]string{
	{"Zeeshan", "Hanif"},
	{"Zain", "Hanif"},
	{"Inam", "ul Haq"},
	{"Rehan", "Uddin"},
	{"Taha", "Ahmed"},
	{"Zia", "Khan"},
	{"Daniyal", "Nagori"},
	{"Mohsin", "Khalid"},
	{"Arsalan", "Sabir"},
	{"Taha", "Shahid"},
}

var sampleDocuments = []sampleDocument{
	{
		title: "The Future of Artificial Intelligence",
		body: "Artificial intelligence (AI) is transforming industries and society at large. From healthcare to transportation, " +
			"AI is driving innovation and efficiency. This document explores the potential future impacts of AI, including ethical " +
			"considerations and technological advancements. The rapid pace of AI development necessitates thoughtful discourse on its role in society.",
		references: []string{
			"Russell, S., & Norvig, P. (2021). Artificial Intelligence: A Modern Approach. Pearson.",
			"Tegmark, M. (2017). Life 3.0: Being Human in the Age of Artificial Intelligence. Knopf.",
		},
		authors: []int{0, 1, 2},
	},
	{
		title: "Climate Change: Challenges and Solutions",
		body: "Climate change poses significant challenges to ecosystems, economies, and communities worldwide. This document examines " +
			"the causes of climate change and potential solutions. It highlights the importance of international cooperation, sustainable " +
			"practices, and technological innovation in addressing environmental issues. The document also discusses the role of policy " +
			"and individual actions in mitigating climate impacts.",
		references: []string{
			"IPCC. (2021). Climate Change 2021: The Physical Science Basis. Cambridge University Press.",
			"Klein, N. (2014). This Changes Everything: Capitalism vs. The Climate. Simon & Schuster.",
			"McKibben, B. (2019). Falter: Has the Human Game Begun to Play Itself Out? Henry Holt and Co.",
		},
		authors: []int{2, 3, 4},
	},
	{
		title: "The Evolution of the Internet",
		body: "The internet has evolved from a research project to a global communication network. This document traces the history " +
			"of the internet, from its inception to its current state. It discusses key milestones, such as the development of the " +
			"World Wide Web and the rise of social media. The document also explores future trends, including the impact of the " +
			"internet on privacy, security, and connectivity.",
		references: []string{
			"Castells, M. (2010). The Rise of the Network Society: The Information Age: Economy, Society, and Culture. Wiley-Blackwell.",
			"Schmidt, E., & Cohen, J. (2014). The New Digital Age: Reshaping the Future of People, Nations, and Business. Vintage",
		},
		authors: []int{6, 7},
	},
}

// Run loads the sample catalogue. It does nothing when any author exists.
func Run(ctx context.Context, authors authorService.ServiceInterface, documents documentService.ServiceInterface) error {
	existing, err := authors.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("seed: list authors: %w", err)
	}
	if len(existing) > 0 {
		log.Info().Int("authors", len(existing)).Msg("[SEED] Store not empty, skipping")
		return nil
	}

	ids := make([]int64, len(sampleAuthors))
	for i, name := range sampleAuthors {
		a, err := authors.Create(ctx, authorModel.CreateAuthorRequest{FirstName: name[0], LastName: name[1]})
		if err != nil {
			return fmt.Errorf("seed: create author %s %s: %w", name[0], name[1], err)
		}
		ids[i] = a.ID
	}

	for _, sd := range sampleDocuments {
		req := documentModel.CreateDocumentRequest{Title: sd.title, Body: sd.body}
		for _, r := range sd.references {
			req.References = append(req.References, documentModel.ReferenceRequest{Reference: r})
		}
		for _, idx := range sd.authors {
			req.Authors = append(req.Authors, shared.EntityRef{ID: ids[idx]})
		}

		if _, err := documents.Create(ctx, req); err != nil {
			return fmt.Errorf("seed: create document %q: %w", sd.title, err)
		}
	}

	log.Info().
		Int("authors", len(sampleAuthors)).
		Int("documents", len(sampleDocuments)).
		Msg("[SEED] Sample data loaded")
	return nil
}
