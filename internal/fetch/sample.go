package fetch

// SampleBibliography is the built-in example dataset, used as the final
// fallback so publication pages are never empty, and by `scholar init` as
// scaffold content.
const SampleBibliography = `% Sample bibliography. Replace with your own entries.
@article{sample2023journal,
  title = {An Example Journal Article},
  author = {Ada Lovelace and Charles Babbage},
  journal = {Journal of Examples},
  year = {2023},
  doi = {10.0000/example.2023},
}

@inproceedings{sample2022conf,
  title = {An Example Conference Paper},
  author = {Ada Lovelace and Grace Hopper},
  booktitle = {Proceedings of the Example Conference (EXAMPLE)},
  year = {2022},
}

@misc{sample2024preprint,
  title = {An Example Preprint},
  author = {Grace Hopper},
  publisher = {arXiv},
  year = {2024},
  url = {https://arxiv.org/abs/0000.00000},
}
`

// BuiltinBibliography returns the built-in sample dataset as a source.
func BuiltinBibliography() *BuiltinSource {
	return &BuiltinSource{Body: SampleBibliography}
}
