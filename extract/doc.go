// Package extract turns uploaded files into textual pages for ingestion.
package extract
