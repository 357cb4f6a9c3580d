// Package writers persists chunk records as FASTA files.
//
// Design:
//   • WriteRecords is append-only; callers pick unique names per chunk and
//     use CheckTarget / CheckBases so one run never extends another's files.
//   • Naming helpers own the on-disk layout (<outdir>/<base>/<dtype>/...).
//   • Nothing here knows about planning or sanitizing.
package writers
